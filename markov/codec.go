package markov

import (
	"encoding/json"
	"os"
)

// SaveModel serializes the model parameters to JSON.
func SaveModel(model *Model, path string) error {
	data, err := json.MarshalIndent(model.Params(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadModel reads model parameters from a JSON file and builds the model.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return UnmarshalModel(data)
}

// MarshalModel serializes the model parameters to JSON bytes.
func MarshalModel(model *Model) ([]byte, error) {
	return json.Marshal(model.Params())
}

// UnmarshalModel deserializes model parameters from JSON bytes and builds the model.
func UnmarshalModel(data []byte) (*Model, error) {
	var p Params
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return NewFromParams(p)
}
