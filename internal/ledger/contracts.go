package ledger

import (
	"context"
	"time"

	"visiting-card-bot/constants"
	"visiting-card-bot/internal/entity"
)

// Appender is the append-only persistence sink. The only contract the core
// holds it to is column order: Timestamp, ConversationID, then the nine card
// fields. Header/table initialization is the sink's business.
type Appender interface {
	Append(ctx context.Context, row Row) error
	Close() error
}

// Row is one persisted extraction.
type Row struct {
	Timestamp      time.Time
	ConversationID string
	Card           entity.Card
}

// ist is the fixed zone rows are stamped in. The IANA zone is preferred;
// systems without tzdata fall back to the fixed UTC+5:30 offset.
var ist = func() *time.Location {
	if loc, err := time.LoadLocation(constants.TimestampZone); err == nil {
		return loc
	}
	return time.FixedZone("IST", 5*3600+30*60)
}()

// NewRow stamps a row at the moment of persistence.
func NewRow(conversationID string, card entity.Card, now time.Time) Row {
	return Row{
		Timestamp:      now.In(ist),
		ConversationID: conversationID,
		Card:           card,
	}
}

// Values flattens the row in ledger column order.
func (r Row) Values() []string {
	return []string{
		r.Timestamp.Format(constants.TimestampLayout),
		r.ConversationID,
		r.Card.Name,
		r.Card.Designation,
		r.Card.Company,
		r.Card.Phone,
		r.Card.Email,
		r.Card.Website,
		r.Card.Address,
		r.Card.Industry,
		r.Card.Services,
	}
}
