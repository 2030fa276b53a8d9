package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"todoctl/internal/validate"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"empty", "", validate.MsgTitleRequired},
		{"whitespace only", "   \t\n", validate.MsgTitleRequired},
		{"one char", "A", validate.MsgTitleTooShort},
		{"one char padded", "  A  ", validate.MsgTitleTooShort},
		{"two chars", "Go", ""},
		{"typical", "Buy milk", ""},
		{"exactly max", strings.Repeat("a", 100), ""},
		{"max padded", "  " + strings.Repeat("a", 100) + "  ", ""},
		{"over max", strings.Repeat("a", 101), validate.MsgTitleTooLong},
		{"multibyte within max", strings.Repeat("할", 100), ""},
		{"multibyte two runes", "할일", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validate.Title(tt.value))
		})
	}
}

func TestTitle_AcceptsWholeRange(t *testing.T) {
	for n := 0; n <= 120; n++ {
		got := validate.Title(strings.Repeat("x", n))
		valid := n >= validate.TitleMinLen && n <= validate.TitleMaxLen
		if valid {
			assert.Empty(t, got, "length %d should be valid", n)
		} else {
			assert.NotEmpty(t, got, "length %d should be rejected", n)
		}
	}
}

// Lengths count code points, so an emoji outside the BMP counts once even
// though it takes two UTF-16 units.
func TestTitle_CountsAstralRunesOnce(t *testing.T) {
	assert.Empty(t, validate.Title("😀"+"😀"))
	assert.Empty(t, validate.Title(strings.Repeat("😀", 51)))
	assert.Empty(t, validate.Title(strings.Repeat("😀", 100)))
	assert.Equal(t, validate.MsgTitleTooLong, validate.Title(strings.Repeat("😀", 101)))
	assert.Equal(t, validate.MsgTitleTooShort, validate.Title("😀"))
	assert.Empty(t, validate.Description(strings.Repeat("🎉", 500)))
	assert.Equal(t, validate.MsgDescriptionLong, validate.Description(strings.Repeat("🎉", 501)))
}

func TestDescription(t *testing.T) {
	assert.Empty(t, validate.Description(""))
	assert.Empty(t, validate.Description("   "))
	assert.Empty(t, validate.Description(strings.Repeat("d", 500)))
	assert.Empty(t, validate.Description(" "+strings.Repeat("d", 500)+" "))
	assert.Equal(t, validate.MsgDescriptionLong, validate.Description(strings.Repeat("d", 501)))
}

func TestField(t *testing.T) {
	assert.Equal(t, validate.MsgTitleTooShort, validate.Field(validate.FieldTitle, "A"))
	assert.Equal(t, validate.MsgDescriptionLong, validate.Field(validate.FieldDescription, strings.Repeat("d", 501)))
	assert.Empty(t, validate.Field("completed", "whatever"))
}
