package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"visiting-card-bot/constants"
)

func TestPhone(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"plus91 with space", "ca11 +91 9876543210 anytime", "+91 9876543210"},
		{"plus91 with hyphen", "+91-9876543210", "+91-9876543210"},
		{"bare ten digits", "ph 9876543210 office", "9876543210"},
		{"first match wins", "9876543210 and 9123456789", "9876543210"},
		{"too short", "call 12345", constants.Sentinel},
		{"empty", "", constants.Sentinel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Phone(tt.text))
		})
	}
}

func TestEmail(t *testing.T) {
	assert.Equal(t, "amit.shah@acme.co.in", Email("mail amit.shah@acme.co.in web"))
	assert.Equal(t, "a_b%c+d@x-y.io", Email("a_b%c+d@x-y.io"))
	assert.Equal(t, constants.Sentinel, Email("no email here"))
	assert.Equal(t, constants.Sentinel, Email("broken@domain"))
}

func TestWebsite(t *testing.T) {
	assert.Equal(t, "https://acme.in/about", Website("see https://acme.in/about now"))
	assert.Equal(t, "www.acme.in", Website("visit www.acme.in today"))
	// OCR spacing artifact: "www acme.in" repairs to "www.acme.in".
	assert.Equal(t, "www.acme.in", Website("visit www acme.in today"))
	assert.Equal(t, constants.Sentinel, Website("nothing here"))
}

func TestDeterministicAllSentinels(t *testing.T) {
	fields := Deterministic("just a name and a tit1e")
	assert.Equal(t, constants.Sentinel, fields.Phone)
	assert.Equal(t, constants.Sentinel, fields.Email)
	assert.Equal(t, constants.Sentinel, fields.Website)
}
