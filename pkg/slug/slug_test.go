package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Wireless Headphones", "wireless-headphones"},
		{"Hello   World!", "hello-world"},
		{"Crème Brûlée Maker", "creme-brulee-maker"},
		{"Señor Niño", "senor-nino"},
		{"  trimmed  ", "trimmed"},
		{"100% Cotton T-Shirt", "100-cotton-t-shirt"},
		{"UPPER case MiXeD", "upper-case-mixed"},
		{"---", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Generate(tc.name), "input %q", tc.name)
	}
}
