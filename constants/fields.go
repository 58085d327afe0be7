package constants

// Sentinel stands in for "no value found" everywhere a card field would
// otherwise be empty. Downstream consumers (ledger rows, reply text) rely on
// every field being present, so absence is never represented by "" or omission.
const Sentinel = "Not Found"

// ServicesSeparator joins the Services list into a single cell/reply value.
const ServicesSeparator = ", "

// LedgerColumns is the fixed column order for the append-only ledger.
// Sinks must never reorder these.
var LedgerColumns = []string{
	"Timestamp (IST)",
	"Conversation_ID",
	"Name",
	"Designation",
	"Company",
	"Phone",
	"Email",
	"Website",
	"Address",
	"Industry",
	"Services",
}

// TimestampLayout is the wall-clock format stamped onto persisted rows.
const TimestampLayout = "2006-01-02 15:04:05"

// TimestampZone is the fixed region for row timestamps (not UTC).
const TimestampZone = "Asia/Kolkata"
