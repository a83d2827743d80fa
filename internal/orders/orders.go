package orders

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

const FileName = "orders.json"

var ErrNotFound = errors.New("orders document not found")

var orderFields = []string{"order_id", "order_date", "status"}

type OrderStatus struct {
	OrderID   int32  `json:"order_id"`
	OrderDate string `json:"order_date"`
	Status    string `json:"status"`
}

// UnmarshalJSON accepts only objects with exactly the keys order_id,
// order_date and status, matched case-sensitively, none of them null.
func (o *OrderStatus) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return errors.New("order is null")
	}
	if len(raw) != len(orderFields) {
		return fmt.Errorf("order has %d fields, want %d", len(raw), len(orderFields))
	}
	for _, name := range orderFields {
		v, ok := raw[name]
		if !ok {
			return fmt.Errorf("order is missing %q", name)
		}
		if string(bytes.TrimSpace(v)) == "null" {
			return fmt.Errorf("order field %q is null", name)
		}
	}

	if err := json.Unmarshal(raw["order_id"], &o.OrderID); err != nil {
		return fmt.Errorf("order_id: %w", err)
	}
	if err := json.Unmarshal(raw["order_date"], &o.OrderDate); err != nil {
		return fmt.Errorf("order_date: %w", err)
	}
	if err := json.Unmarshal(raw["status"], &o.Status); err != nil {
		return fmt.Errorf("status: %w", err)
	}
	return nil
}

// Store reads the orders document from a data directory. It holds no state;
// every Load re-reads the file.
type Store struct {
	Dir string
}

func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

func (s *Store) Path() string {
	return s.Dir + "/" + FileName
}

func (s *Store) Load() ([]OrderStatus, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, s.Path())
		}
		return nil, fmt.Errorf("error reading %s: %w", s.Path(), err)
	}

	var orders []OrderStatus
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", s.Path(), err)
	}
	if orders == nil {
		orders = []OrderStatus{}
	}

	return orders, nil
}
