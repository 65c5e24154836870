package httpapi

import (
	"io"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// maxBodySize bounds request bodies; the API only accepts small JSON
// documents.
const maxBodySize = 1 << 20

// readBody drains the request body with a size cap.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		return nil, errors.Wrap(err, "read body")
	}
	return body, nil
}

type addItemRequest struct {
	Slug     string
	Quantity int
}

func decodeAddItemRequest(data []byte) (addItemRequest, error) {
	var req addItemRequest
	d := jx.DecodeBytes(data)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "slug":
			v, err := d.Str()
			req.Slug = v
			return err
		case "quantity":
			v, err := d.Int()
			req.Quantity = v
			return err
		default:
			return d.Skip()
		}
	}); err != nil {
		return req, errors.Wrap(err, "decode add item request")
	}
	if req.Slug == "" {
		return req, errors.New("slug required")
	}
	return req, nil
}

func decodeQuantityRequest(data []byte) (int, error) {
	var (
		quantity int
		seen     bool
	)
	d := jx.DecodeBytes(data)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		if key != "quantity" {
			return d.Skip()
		}
		v, err := d.Int()
		quantity = v
		seen = true
		return err
	}); err != nil {
		return 0, errors.Wrap(err, "decode quantity request")
	}
	if !seen {
		return 0, errors.New("quantity required")
	}
	return quantity, nil
}

type checkoutRequest struct {
	CustomerName    string
	CustomerPhone   string
	DeliveryAddress string
}

func decodeCheckoutRequest(data []byte) (checkoutRequest, error) {
	var req checkoutRequest
	d := jx.DecodeBytes(data)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "customerName":
			req.CustomerName, err = d.Str()
		case "customerPhone":
			req.CustomerPhone, err = d.Str()
		case "deliveryAddress":
			req.DeliveryAddress, err = d.Str()
		default:
			err = d.Skip()
		}
		return err
	}); err != nil {
		return req, errors.Wrap(err, "decode checkout request")
	}
	return req, nil
}

type orderItemRequest struct {
	Slug     string
	Quantity int
}

type createOrderRequest struct {
	CustomerName    string
	CustomerPhone   string
	DeliveryAddress string
	Items           []orderItemRequest
}

func decodeCreateOrderRequest(data []byte) (createOrderRequest, error) {
	var req createOrderRequest
	d := jx.DecodeBytes(data)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "customerName":
			req.CustomerName, err = d.Str()
		case "customerPhone":
			req.CustomerPhone, err = d.Str()
		case "deliveryAddress":
			req.DeliveryAddress, err = d.Str()
		case "items":
			err = d.Arr(func(d *jx.Decoder) error {
				var item orderItemRequest
				if err := d.Obj(func(d *jx.Decoder, key string) error {
					var err error
					switch key {
					case "slug":
						item.Slug, err = d.Str()
					case "quantity":
						item.Quantity, err = d.Int()
					default:
						err = d.Skip()
					}
					return err
				}); err != nil {
					return err
				}
				req.Items = append(req.Items, item)
				return nil
			})
		default:
			err = d.Skip()
		}
		return err
	}); err != nil {
		return req, errors.Wrap(err, "decode create order request")
	}
	return req, nil
}
