package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullAddress(t *testing.T) {
	a := Address{
		StreetAddress: "12 Rue des Lilas",
		City:          "Lyon",
		PostalCode:    "69003",
		District:      "Part-Dieu",
	}
	assert.Equal(t, "12 Rue des Lilas, Part-Dieu, Lyon, 69003", a.FullAddress())

	empty := Address{City: "Lyon"}
	assert.Equal(t, "Lyon", empty.FullAddress())
}

func TestMaskedPhone(t *testing.T) {
	u := User{Phone: "+33612345678"}
	assert.Equal(t, "XX XX XX 5678", u.MaskedPhone())

	short := User{Phone: "123"}
	assert.Equal(t, "123", short.MaskedPhone())
}

func TestFullName(t *testing.T) {
	u := User{FirstName: "Nina", LastName: "Katz"}
	assert.Equal(t, "Nina Katz", u.FullName())
}
