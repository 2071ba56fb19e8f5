package repo

import (
	"fmt"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rogerio-castellano/stocksync/internal/models"
)

// Decode copies document fields into out, accepting the loosely typed values
// a JSON-backed store hands back (float64 numbers, RFC 3339 timestamps).
func Decode(doc Document, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
		WeaklyTypedInput: true,
		Result:           out,
		TagName:          "mapstructure",
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(doc.Fields); err != nil {
		return fmt.Errorf("decode document %s: %w", doc.ID, err)
	}
	return nil
}

func DecodeProduct(doc Document) (models.Product, error) {
	var p models.Product
	if err := Decode(doc, &p); err != nil {
		return models.Product{}, err
	}
	p.ID = doc.ID
	return p, nil
}

func DecodeOrder(doc Document) (models.Order, error) {
	var o models.Order
	if err := Decode(doc, &o); err != nil {
		return models.Order{}, err
	}
	o.ID = doc.ID
	return o, nil
}

func DecodeNotification(doc Document) (models.Notification, error) {
	var n models.Notification
	if err := Decode(doc, &n); err != nil {
		return models.Notification{}, err
	}
	n.ID = doc.ID
	return n, nil
}

// DecodeAll decodes every document it can. Documents that fail to decode are
// skipped and reported through the returned errors so a single bad record
// never hides the rest of a snapshot.
func DecodeAll[T any](docs []Document, decode func(Document) (T, error)) ([]T, []error) {
	out := make([]T, 0, len(docs))
	var errs []error
	for _, d := range docs {
		v, err := decode(d)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, v)
	}
	return out, errs
}
