package resource_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/pizzeria/pkg/resource"
)

type pizza struct {
	Code  int
	Name  string
	Price float64
}

var pizzaResource = resource.Func[pizza](func(p pizza) resource.Map {
	return resource.Map{"code": p.Code, "name": p.Name}
})

func TestOneAndMany(t *testing.T) {
	assert.Equal(t, resource.Map{"code": 1, "name": "Margherita"}, resource.One(pizzaResource, pizza{1, "Margherita", 5}))

	all := resource.Many(pizzaResource, []pizza{{1, "Margherita", 5}, {2, "Pepperoni", 7.5}})
	require.Len(t, all, 2)
	assert.Equal(t, "Pepperoni", all[1]["name"])
}

func TestManyOfNothingEncodesAsEmptyArray(t *testing.T) {
	raw, err := json.Marshal(resource.Many(pizzaResource, nil))
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestOmit(t *testing.T) {
	in := resource.Map{"email": "a@b.c", "hashedPassword": "x"}
	out := resource.Omit(in, "hashedPassword")
	assert.Equal(t, resource.Map{"email": "a@b.c"}, out)
	assert.Contains(t, in, "hashedPassword")
}
