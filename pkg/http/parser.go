package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/klwxsrx/go-auth-session/pkg/strings"
)

type (
	DataExtractor[T any] func(dataProvider) (T, error)

	supportedParsingTypes interface {
		strings.SupportedValueParsingTypes
	}

	dataProvider interface {
		PathParameters() map[string]string
		QueryParameters() url.Values
		Body() io.ReadCloser
	}

	requestDataProvider struct {
		*http.Request
	}

	responseDataProvider struct {
		Response
	}
)

var ErrParsingError = errors.New("parsing error")

func ParseRequest[T any](r *http.Request, extractor DataExtractor[T], lastErr error) (T, error) {
	if lastErr != nil {
		var result T
		return result, lastErr
	}

	return extractor(requestDataProvider{r})
}

func ParseResponse[T any](r Response, extractor DataExtractor[T], lastErr error) (T, error) {
	if lastErr != nil {
		var result T
		return result, lastErr
	}

	return extractor(responseDataProvider{r})
}

func ParseResponseOptional[T any](r Response, extractor DataExtractor[T], lastErr error) *T {
	if lastErr != nil {
		return nil
	}

	result, err := extractor(responseDataProvider{r})
	if err != nil {
		return nil
	}

	return &result
}

func PathParameter[T supportedParsingTypes](param string) DataExtractor[T] {
	return func(p dataProvider) (T, error) {
		paramValue, ok := p.PathParameters()[param]
		if !ok {
			var result T
			return result, fmt.Errorf("%w: path parameter %s not found", ErrParsingError, param)
		}

		return parseTypedValueImpl[T](paramValue)
	}
}

func QueryParameter[T supportedParsingTypes](param string) DataExtractor[T] {
	return func(p dataProvider) (T, error) {
		value := p.QueryParameters().Get(param)
		if value == "" {
			var result T
			return result, fmt.Errorf("%w: query parameter %s not found", ErrParsingError, param)
		}

		return parseTypedValueImpl[T](value)
	}
}

func JSONBody[T any]() DataExtractor[T] {
	return func(p dataProvider) (T, error) {
		var result T
		err := json.NewDecoder(p.Body()).Decode(&result)
		if err != nil {
			return result, fmt.Errorf("%w: decode json body: %w", ErrParsingError, err)
		}

		return result, nil
	}
}

func (p requestDataProvider) PathParameters() map[string]string {
	return mux.Vars(p.Request)
}

func (p requestDataProvider) QueryParameters() url.Values {
	return p.Request.URL.Query()
}

func (p requestDataProvider) Body() io.ReadCloser {
	return p.Request.Body
}

func (p responseDataProvider) PathParameters() map[string]string {
	return nil
}

func (p responseDataProvider) QueryParameters() url.Values {
	return nil
}

func (p responseDataProvider) Body() io.ReadCloser {
	return io.NopCloser(bytes.NewReader(p.Response.Body()))
}

func parseTypedValueImpl[T supportedParsingTypes](value string) (T, error) {
	v, err := strings.ParseTypedValue[T](value)
	if err == nil {
		return v, nil
	}

	return v, fmt.Errorf("%w: %w", ErrParsingError, err)
}
