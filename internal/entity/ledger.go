package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Ledger is the full set of current bookings keyed by customer name.
// Iteration follows insertion order; re-adding an existing name keeps its
// original position.
type Ledger struct {
	order    []string
	bookings map[string]*Booking
}

func NewLedger() *Ledger {
	return &Ledger{bookings: make(map[string]*Booking)}
}

func (l *Ledger) Len() int {
	return len(l.order)
}

func (l *Ledger) Get(customerName string) (*Booking, bool) {
	b, ok := l.bookings[customerName]
	return b, ok
}

// Put stores b under its customer name, replacing any previous booking.
func (l *Ledger) Put(b *Booking) {
	if _, exists := l.bookings[b.CustomerName]; !exists {
		l.order = append(l.order, b.CustomerName)
	}
	l.bookings[b.CustomerName] = b
}

// Remove deletes the booking and reports whether it was present.
func (l *Ledger) Remove(customerName string) bool {
	if _, exists := l.bookings[customerName]; !exists {
		return false
	}
	delete(l.bookings, customerName)
	for i, name := range l.order {
		if name == customerName {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return true
}

// Bookings returns the bookings in storage order.
func (l *Ledger) Bookings() []*Booking {
	out := make([]*Booking, 0, len(l.order))
	for _, name := range l.order {
		out = append(out, l.bookings[name])
	}
	return out
}

// Filter returns the bookings accepted by keep, in storage order.
func (l *Ledger) Filter(keep func(*Booking) bool) []*Booking {
	var out []*Booking
	for _, b := range l.Bookings() {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

func (l *Ledger) TotalRevenue() float64 {
	total := 0.0
	for _, name := range l.order {
		total += l.bookings[name].TotalCharge
	}
	return total
}

// MarshalJSON writes the ledger as a JSON object in storage order.
func (l *Ledger) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range l.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(l.bookings[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object keeping key order. The key is
// authoritative for the customer name and the total charge is recomputed.
func (l *Ledger) UnmarshalJSON(data []byte) error {
	fresh := NewLedger()

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*l = *fresh
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("ledger: expected JSON object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("ledger: expected customer name key, got %v", tok)
		}

		var b Booking
		if err := dec.Decode(&b); err != nil {
			return fmt.Errorf("ledger: booking %q: %w", name, err)
		}
		b.CustomerName = name
		total, err := ChargeFor(b.Nights, b.RatePerNight)
		if err != nil {
			return fmt.Errorf("ledger: booking %q: %w", name, err)
		}
		b.TotalCharge = total
		fresh.Put(&b)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*l = *fresh
	return nil
}
