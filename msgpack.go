// SPDX-License-Identifier: Apache-2.0

package offsetvec

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

var (
	_ msgpack.CustomEncoder = (*Vec[int])(nil)
	_ msgpack.CustomDecoder = (*Vec[int])(nil)
	_ msgpack.CustomEncoder = (*FallbackVec[int])(nil)
	_ msgpack.CustomDecoder = (*FallbackVec[int])(nil)
)

type vecPayload[V Number] struct {
	Start uint `msgpack:"start"`
	End   uint `msgpack:"end"`
	Data  []V  `msgpack:"data"`
}

type fallbackPayload[T Number] struct {
	Start uint `msgpack:"start"`
	End   uint `msgpack:"end"`
	Below T    `msgpack:"below"`
	Above T    `msgpack:"above"`
	Data  []T  `msgpack:"data"`
}

func (v *Vec[V]) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.Encode(vecPayload[V]{Start: v.span.Start, End: v.span.End, Data: v.data})
}

// DecodeMsgpack validates the decoded span and data exactly as [New] does,
// so a payload whose length disagrees with its span is rejected.
func (v *Vec[V]) DecodeMsgpack(dec *msgpack.Decoder) error {
	var p vecPayload[V]
	if err := dec.Decode(&p); err != nil {
		return fmt.Errorf("decode vec: %w", err)
	}
	nv, err := New(p.Data, p.Start, p.End)
	if err != nil {
		return fmt.Errorf("decode vec: %w", err)
	}
	*v = *nv
	return nil
}

func (v *FallbackVec[T]) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.Encode(fallbackPayload[T]{
		Start: v.meta.Start,
		End:   v.meta.End,
		Below: v.meta.Below,
		Above: v.meta.Above,
		Data:  v.data,
	})
}

func (v *FallbackVec[T]) DecodeMsgpack(dec *msgpack.Decoder) error {
	var p fallbackPayload[T]
	if err := dec.Decode(&p); err != nil {
		return fmt.Errorf("decode fallback vec: %w", err)
	}
	nv, err := NewFallback(p.Data, p.Start, p.End, p.Below, p.Above)
	if err != nil {
		return fmt.Errorf("decode fallback vec: %w", err)
	}
	*v = *nv
	return nil
}
