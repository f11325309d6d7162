package infra

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncar(t *testing.T) {
	assert.Equal(t, "Pizza Muzzarella", truncar("Pizza Muzzarella", 22))

	// Accented rune right at the cut point must not produce a broken rune
	largo := strings.Repeat("a", 21) + "é con provenzal"
	got := truncar(largo, 22)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("a", 21)+"…", got)
	assert.Equal(t, 22, utf8.RuneCountInString(got))

	// Exactly at the limit stays untouched
	justo := strings.Repeat("ñ", 22)
	assert.Equal(t, justo, truncar(justo, 22))
}
