package positions

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

//go:embed storage.schema.json
var storageSchemaJSON string

// storageSchema compiles the storage schema once.
var storageSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource("storage.schema.json", bytes.NewReader([]byte(storageSchemaJSON))); err != nil {
		return nil, err
	}
	return compiler.Compile("storage.schema.json")
})

// orderDoc is the persisted form of an order: derived figures are not stored.
type orderDoc struct {
	ID     int             `json:"id"`
	Action Action          `json:"action"`
	Amount Quantity        `json:"amount"`
	Value  decimal.Decimal `json:"value"`
}

type positionDoc struct {
	ID       int        `json:"id"`
	Name     string     `json:"name"`
	Action   Action     `json:"action"`
	EditedAt time.Time  `json:"editedAt"`
	Orders   []orderDoc `json:"orders"`
}

// MarshalJSON keeps the field order stable and omits an unknown edition time.
func (p positionDoc) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", p.ID)
	w.Append("name", p.Name)
	w.Append("action", p.Action)
	w.Optional("editedAt", p.EditedAt)
	w.Append("orders", p.Orders)
	return w.MarshalJSON()
}

type sortDoc struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

type bookDoc struct {
	Currency           string        `json:"currency,omitempty"`
	SortPositionsBy    *sortDoc      `json:"sortPositionsBy,omitempty"`
	MoveClosedToBottom bool          `json:"moveClosedToBottom"`
	Positions          []positionDoc `json:"positions"`
}

func newPositionDoc(p *Position) positionDoc {
	d := positionDoc{ID: p.ID, Name: p.Name, Action: p.Action, EditedAt: p.EditedAt}
	for _, o := range p.orders {
		d.Orders = append(d.Orders, orderDoc{ID: o.ID, Action: o.Action, Amount: o.Amount, Value: o.Value.value})
	}
	return d
}

func (d positionDoc) position(currency string) (*Position, error) {
	orders := make([]Order, 0, len(d.Orders))
	for _, o := range d.Orders {
		orders = append(orders, NewOrder(o.ID, o.Action, o.Amount, M(o.Value, currency)))
	}
	p, err := NewPosition(d.ID, d.Name, orders...)
	if err != nil {
		return nil, err
	}
	if p.Action != d.Action {
		slog.Warn("position action differs from its first order", "position", d.ID, "stored", d.Action, "first order", p.Action)
	}
	p.EditedAt = d.EditedAt
	return p, nil
}

// EncodeBook writes the whole book as an indented JSON document.
func EncodeBook(w io.Writer, b *Book) error {
	doc := bookDoc{
		Currency:           b.Currency,
		SortPositionsBy:    &sortDoc{Field: b.SortBy.Field.String(), Direction: b.SortBy.Direction.String()},
		MoveClosedToBottom: b.MoveClosedToBottom,
		Positions:          make([]positionDoc, 0, len(b.positions)),
	}
	for _, p := range b.positions {
		doc.Positions = append(doc.Positions, newPositionDoc(p))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to serialize positions to json: %w", err)
	}
	return nil
}

// DecodeBook reads a storage document. Legacy documents (a bare array of
// positions) are migrated on the fly.
//
// currency and sortBy are used when the document does not record them.
func DecodeBook(r io.Reader, currency string, sortBy SortBy) (*Book, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read storage: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("failed to decode storage: invalid json")
	}

	var doc bookDoc
	root := gjson.ParseBytes(data)
	switch {
	case root.IsArray():
		if doc, err = migrateLegacy(root); err != nil {
			return nil, fmt.Errorf("failed to migrate legacy storage: %w", err)
		}
		slog.Info("migrated legacy storage", "positions", len(doc.Positions))
	case isSnakeCase(root):
		if doc, err = migrateSnakeCase(root); err != nil {
			return nil, fmt.Errorf("failed to migrate legacy storage: %w", err)
		}
		slog.Info("migrated legacy storage", "positions", len(doc.Positions), "moveClosedToBottom", doc.MoveClosedToBottom)
	default:
		if err := validateDocument(data); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode storage: %w", err)
		}
	}
	return doc.book(currency, sortBy)
}

func validateDocument(data []byte) error {
	schema, err := storageSchema()
	if err != nil {
		return fmt.Errorf("invalid storage schema: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("failed to decode storage: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("storage does not match its schema: %w", err)
	}
	return nil
}

func (doc bookDoc) book(currency string, sortBy SortBy) (*Book, error) {
	if doc.Currency != "" {
		currency = doc.Currency
	}
	b := NewBook(currency)
	b.SortBy = sortBy
	if doc.SortPositionsBy != nil {
		s, err := ParseSortBy(doc.SortPositionsBy.Field + ":" + doc.SortPositionsBy.Direction)
		if err != nil {
			return nil, fmt.Errorf("failed to decode storage: %w", err)
		}
		b.SortBy = s
	}
	b.MoveClosedToBottom = doc.MoveClosedToBottom
	for _, pd := range doc.Positions {
		p, err := pd.position(b.Currency)
		if err != nil {
			return nil, fmt.Errorf("failed to decode storage: %w", err)
		}
		if err := b.Append(p); err != nil {
			return nil, fmt.Errorf("failed to decode storage: %w", err)
		}
	}
	return b, nil
}

// migrateLegacy converts the bare array layouts used by earlier versions:
// positions with orders, or flat positions with a buy and a sell price.
func migrateLegacy(root gjson.Result) (bookDoc, error) {
	doc := bookDoc{Positions: make([]positionDoc, 0)}
	var err error
	root.ForEach(func(_, v gjson.Result) bool {
		var pd positionDoc
		if v.Get("orders").Exists() {
			pd, err = legacyPosition(v)
		} else {
			pd, err = flatPosition(v)
		}
		if err != nil {
			err = fmt.Errorf("position %s: %w", v.Get("id").Raw, err)
			return false
		}
		doc.Positions = append(doc.Positions, pd)
		return true
	})
	return doc, err
}

// isSnakeCase detects the object layout that preceded the current one:
// {"sort_positions_by":{"LastChange":"D"},"move_closed_to_bottom":true,"positions":[...]}.
func isSnakeCase(root gjson.Result) bool {
	return root.IsObject() && (root.Get("sort_positions_by").Exists() || root.Get("move_closed_to_bottom").Exists())
}

var snakeCaseFields = map[string]SortField{
	"Id":         ByID,
	"AvgValue":   ByAvgValue,
	"AvgPrice":   ByAvgPrice,
	"Income":     ByIncome,
	"LastChange": ByLastChange,
}

func migrateSnakeCase(root gjson.Result) (bookDoc, error) {
	doc, err := migrateLegacy(root.Get("positions"))
	if err != nil {
		return doc, err
	}
	doc.MoveClosedToBottom = root.Get("move_closed_to_bottom").Bool()

	sortBy := root.Get("sort_positions_by")
	if !sortBy.Exists() {
		return doc, nil
	}
	sortBy.ForEach(func(k, v gjson.Result) bool {
		field, ok := snakeCaseFields[k.String()]
		if !ok {
			err = fmt.Errorf("unknown sorting method %q", k.String())
			return false
		}
		dir := Descending
		switch v.String() {
		case "A":
			dir = Ascending
		case "D":
		default:
			err = fmt.Errorf("unknown sorting direction %q", v.String())
			return false
		}
		doc.SortPositionsBy = &sortDoc{Field: field.String(), Direction: dir.String()}
		return false
	})
	return doc, err
}

func legacyPosition(v gjson.Result) (positionDoc, error) {
	pd := positionDoc{ID: int(v.Get("id").Int()), Name: v.Get("name").String()}
	var err error
	v.Get("orders").ForEach(func(_, o gjson.Result) bool {
		var od orderDoc
		od.ID = int(o.Get("id").Int())
		if od.Action, err = legacyAction(o.Get("action").String()); err != nil {
			return false
		}
		var amount decimal.Decimal
		if amount, err = decimal.NewFromString(o.Get("amount").Raw); err != nil {
			return false
		}
		od.Amount = Q(amount)
		if od.Value, err = decimal.NewFromString(o.Get("value").Raw); err != nil {
			return false
		}
		pd.Orders = append(pd.Orders, od)
		return true
	})
	if err != nil {
		return pd, err
	}
	if len(pd.Orders) > 0 {
		pd.Action = pd.Orders[0].Action
	}
	return pd, nil
}

// flatPosition migrates {"id","name","amount","value","buy_price","sell_price","income"}:
// a bought amount, sold entirely at sell_price when it is set.
func flatPosition(v gjson.Result) (positionDoc, error) {
	amount, err := decimal.NewFromString(v.Get("amount").Raw)
	if err != nil {
		return positionDoc{}, fmt.Errorf("amount: %w", err)
	}
	value, err := decimal.NewFromString(v.Get("value").Raw)
	if err != nil {
		return positionDoc{}, fmt.Errorf("value: %w", err)
	}
	pd := positionDoc{
		ID:     int(v.Get("id").Int()),
		Name:   v.Get("name").String(),
		Action: Long,
		Orders: []orderDoc{{ID: 0, Action: Long, Amount: Q(amount), Value: value}},
	}
	if sell := v.Get("sell_price").Float(); sell > 0 {
		pd.Orders = append(pd.Orders, orderDoc{
			ID:     1,
			Action: Short,
			Amount: Q(amount),
			Value:  amount.Mul(decimal.NewFromFloat(sell)),
		})
	}
	return pd, nil
}

func legacyAction(s string) (Action, error) {
	switch s {
	case "L", "Long":
		return Long, nil
	case "S", "Short":
		return Short, nil
	default:
		return 0, fmt.Errorf("unknown action %q", s)
	}
}
