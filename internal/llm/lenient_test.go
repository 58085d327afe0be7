package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visiting-card-bot/internal/entity"
)

func TestExtractJSONObjectStrict(t *testing.T) {
	raw, err := ExtractJSONObject(`{"Name":"Amit"}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Name":"Amit"}`, string(raw))
}

func TestExtractJSONObjectEmbedded(t *testing.T) {
	content := `Here you go: {"Name":"Amit Shah","Designation":"CEO","Company":"Acme","Address":"","Industry":"Tech","Services":["Consulting"]} thanks`

	var fields entity.AIFields
	require.NoError(t, DecodeLooseJSON(content, &fields))
	assert.Equal(t, "Amit Shah", fields.Name)
	assert.Equal(t, "CEO", fields.Designation)
	assert.Equal(t, "Acme", fields.Company)
	assert.Equal(t, "", fields.Address)
	assert.Equal(t, "Tech", fields.Industry)
	assert.Equal(t, []string{"Consulting"}, fields.Services)
}

func TestExtractJSONObjectFailures(t *testing.T) {
	for _, content := range []string{
		"no json here at all",
		"unbalanced { oops",
		"} backwards {",
		"",
	} {
		_, err := ExtractJSONObject(content)
		require.Error(t, err, content)
		assert.Equal(t, ReasonMalformed, ReasonOf(err))
	}
}

func TestDecodeLooseJSONTypeMismatch(t *testing.T) {
	var fields entity.AIFields
	err := DecodeLooseJSON(`{"Services":"not a list"}`, &fields)
	require.Error(t, err)
	assert.Equal(t, ReasonMalformed, ReasonOf(err))
}
