// Package resource controls the JSON shape of models leaving the API.
//
// Define a transformer per model:
//
//	var UserResource = resource.Func[*models.User](func(u *models.User) resource.Map {
//	    return resource.Map{"email": u.Email, "firstName": u.FirstName}
//	})
//
// Respond:
//
//	c.JSON(http.StatusOK, resource.One(UserResource, user))
//	c.JSON(http.StatusOK, resource.Many(UserResource, users))
package resource

// Map is the output of a transformer.
type Map = map[string]any

// Transformer converts one model value into a Map.
type Transformer[T any] interface {
	ToMap(v T) Map
}

// Func adapts a plain function to Transformer.
type Func[T any] func(v T) Map

func (f Func[T]) ToMap(v T) Map { return f(v) }

// One transforms a single value.
func One[T any](t Transformer[T], v T) Map {
	return t.ToMap(v)
}

// Many transforms every value. The result is never nil, so it encodes as
// [] rather than null.
func Many[T any](t Transformer[T], vs []T) []Map {
	out := make([]Map, 0, len(vs))
	for _, v := range vs {
		out = append(out, t.ToMap(v))
	}
	return out
}

// Omit copies m without keys.
func Omit(m Map, keys ...string) Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}
