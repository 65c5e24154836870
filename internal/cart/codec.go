package cart

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/blissbakes/bakehouse/internal/catalog"
)

// Snapshot wire format, one JSON object per cart:
//
//	{"entries":[{"slug":"...","name":{"en":"...","bn":"..."},"unitPrice":"350","quantity":2}]}
//
// Prices travel as strings to keep decimal exactness through the round-trip.

func encodeSnapshot(entries []Entry) []byte {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("entries")
	e.ArrStart()
	for _, entry := range entries {
		e.ObjStart()
		e.FieldStart("slug")
		e.Str(entry.Slug)
		e.FieldStart("name")
		e.ObjStart()
		e.FieldStart("en")
		e.Str(entry.Name.EN)
		e.FieldStart("bn")
		e.Str(entry.Name.BN)
		e.ObjEnd()
		e.FieldStart("unitPrice")
		e.Str(entry.UnitPrice.String())
		e.FieldStart("quantity")
		e.Int(entry.Quantity)
		e.ObjEnd()
	}
	e.ArrEnd()
	e.ObjEnd()
	return e.Bytes()
}

func decodeSnapshot(raw []byte) ([]Entry, error) {
	var entries []Entry
	d := jx.DecodeBytes(raw)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		if key != "entries" {
			return d.Skip()
		}
		return d.Arr(func(d *jx.Decoder) error {
			entry, err := decodeEntry(d)
			if err != nil {
				return err
			}
			entries = append(entries, entry)
			return nil
		})
	}); err != nil {
		return nil, errors.Wrap(err, "decode snapshot")
	}
	return entries, nil
}

func decodeEntry(d *jx.Decoder) (Entry, error) {
	var entry Entry
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "slug":
			v, err := d.Str()
			if err != nil {
				return err
			}
			entry.Slug = v
			return nil
		case "name":
			name, err := decodeText(d)
			if err != nil {
				return err
			}
			entry.Name = name
			return nil
		case "unitPrice":
			v, err := d.Str()
			if err != nil {
				return err
			}
			price, err := decimal.NewFromString(v)
			if err != nil {
				return errors.Wrap(err, "unit price")
			}
			entry.UnitPrice = price
			return nil
		case "quantity":
			v, err := d.Int()
			if err != nil {
				return err
			}
			entry.Quantity = v
			return nil
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return Entry{}, err
	}
	if entry.Slug == "" {
		return Entry{}, errors.New("entry missing slug")
	}
	return entry, nil
}

func decodeText(d *jx.Decoder) (catalog.Text, error) {
	var txt catalog.Text
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "en":
			v, err := d.Str()
			if err != nil {
				return err
			}
			txt.EN = v
			return nil
		case "bn":
			v, err := d.Str()
			if err != nil {
				return err
			}
			txt.BN = v
			return nil
		default:
			return d.Skip()
		}
	})
	return txt, err
}
