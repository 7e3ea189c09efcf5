package valuejson

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/go-json-experiment/json/jsontext"

	"github.com/osvaldoandrade/typedef/internal/domain"
)

var ErrTrailingData = errors.New("trailing data after json value")

// Decoder turns raw JSON into a domain.Value. Object member order is taken
// from the document, and duplicate member names are rejected by the
// underlying token decoder.
type Decoder struct{}

func (Decoder) Decode(ctx context.Context, input []byte) (domain.Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dec := jsontext.NewDecoder(bytes.NewReader(input))
	value, err := readValue(dec)
	if err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	if _, err := dec.ReadToken(); err == nil {
		return nil, fmt.Errorf("decode json: %w", ErrTrailingData)
	} else if !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	return value, nil
}

func readValue(dec *jsontext.Decoder) (domain.Value, error) {
	tok, err := dec.ReadToken()
	if err != nil {
		return nil, err
	}

	switch tok.Kind() {
	case 'n':
		return domain.Null{}, nil
	case 't':
		return domain.Bool(true), nil
	case 'f':
		return domain.Bool(false), nil
	case '"':
		return domain.String(tok.String()), nil
	case '0':
		return domain.Number(tok.Float()), nil
	case '[':
		arr := domain.Array{}
		for dec.PeekKind() != ']' {
			elem, err := readValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, elem)
		}
		if _, err := dec.ReadToken(); err != nil {
			return nil, err
		}
		return arr, nil
	case '{':
		obj := domain.Object{}
		for dec.PeekKind() != '}' {
			tok, err := dec.ReadToken()
			if err != nil {
				return nil, err
			}
			// Token contents are voided by the next decoder call, so take the
			// name before recursing.
			name := tok.String()
			member, err := readValue(dec)
			if err != nil {
				return nil, err
			}
			obj = append(obj, domain.Member{Name: name, Value: member})
		}
		if _, err := dec.ReadToken(); err != nil {
			return nil, err
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unexpected token kind %q", tok.Kind())
	}
}
