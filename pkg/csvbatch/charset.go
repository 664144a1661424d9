package csvbatch

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

const bom = "\uFEFF"

var (
	// ErrUnsupportedCharset el charset indicado no es conocido.
	ErrUnsupportedCharset = errors.New("csvbatch: charset no soportado")
	// ErrInvalidUTF8 el cuerpo se declaró (o se asumió) UTF-8 pero no lo es.
	ErrInvalidUTF8 = errors.New("csvbatch: el archivo no es UTF-8 válido; indique el charset")
)

// ToUTF8 convierte el cuerpo subido a UTF-8 según su charset (etiquetas WHATWG:
// "utf-8", "windows-1252", "iso-8859-1", ...). Vacío se asume UTF-8, y en ese caso
// los bytes inválidos se rechazan en vez de reemplazarse.
func ToUTF8(raw []byte, charset string) (string, error) {
	charset = strings.TrimSpace(strings.ToLower(charset))
	if charset == "" || charset == "utf-8" || charset == "utf8" {
		if !utf8.Valid(raw) {
			return "", ErrInvalidUTF8
		}
		return string(raw), nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedCharset, charset)
	}
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("csvbatch: decodificar %s: %w", charset, err)
	}
	return string(out), nil
}

// WithBOM antepone el BOM UTF-8 para que Excel abra la exportación con la codificación correcta.
func WithBOM(text string) string {
	out, err := unicode.UTF8BOM.NewEncoder().String(text)
	if err != nil {
		return bom + text
	}
	return out
}
