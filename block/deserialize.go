package block

import "encoding/json"

// Deserializer reconstructs an environment value from its persisted textual
// form. The encoding belongs to the collaborator that transported the block;
// this package only defines the seam.
type Deserializer[E any] interface {
	Deserialize(text string) (E, error)
}

// DeserializerFunc adapts a plain function into a Deserializer.
type DeserializerFunc[E any] func(string) (E, error)

func (f DeserializerFunc[E]) Deserialize(text string) (E, error) {
	return f(text)
}

// JSONDeserializer decodes environments from JSON.
type JSONDeserializer[E any] struct{}

func (JSONDeserializer[E]) Deserialize(text string) (E, error) {
	var env E
	if err := json.Unmarshal([]byte(text), &env); err != nil {
		var zero E
		return zero, err
	}
	return env, nil
}
