package tiktoken

import (
	"fmt"

	"github.com/tiktoken-go/tokenizer"
)

// Adapter wraps the cl100k_base BPE codec. Encoding and decoding are
// deterministic and pure; an unavailable encoding is a startup failure.
type Adapter struct {
	codec tokenizer.Codec
}

func New() (*Adapter, error) {
	codec, err := tokenizer.Get(tokenizer.Cl100kBase)
	if err != nil {
		return nil, fmt.Errorf("load cl100k_base encoding: %w", err)
	}
	return &Adapter{codec: codec}, nil
}

func (a *Adapter) Encode(text string) []uint {
	ids, _, err := a.codec.Encode(text)
	if err != nil {
		// The codec only fails on unknown special tokens, which we never
		// pass. Treat text as tokenless rather than failing the caller.
		return nil
	}
	return ids
}

func (a *Adapter) Decode(ids []uint) string {
	text, err := a.codec.Decode(ids)
	if err != nil {
		return ""
	}
	return text
}
