// Package csvbatch convierte filas de catálogo a texto delimitado por comas y viceversa,
// para editar productos e inventario en bloque desde una hoja de cálculo.
//
// El formato es deliberadamente simple y asimétrico:
//
//   - Encode entrecomilla los valores de texto (duplicando las comillas internas) y
//     escribe números, booleanos y decimales tal cual; nil se escribe como campo vacío.
//   - Decode separa cada línea en TODAS las comas. No entiende comas ni saltos de
//     línea dentro de un campo entrecomillado: un valor así no sobrevive el viaje
//     Encode → Decode. Solo deshace el entrecomillado de campos completos.
//
// Decode nunca falla: las filas cortas se rellenan con "", los campos sobrantes se
// ignoran y las filas completamente vacías se descartan.
package csvbatch

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	separator = ","
	lineBreak = "\r\n"
	quote     = `"`
)

var lineSplit = regexp.MustCompile(`\r?\n`)

// Row fila de entrada para Encode: columna → valor escalar.
type Row map[string]any

// Record fila decodificada: columna → texto (nunca se reinterpreta como número).
type Record map[string]string

// Encode produce la línea de cabecera y una línea por fila, separadas por CRLF.
// El orden de columnas es el de headers; una columna ausente en la fila produce un campo vacío.
func Encode(headers []string, rows []Row) string {
	var b strings.Builder
	b.WriteString(strings.Join(headers, separator))
	for _, r := range rows {
		b.WriteString(lineBreak)
		for i, h := range headers {
			if i > 0 {
				b.WriteString(separator)
			}
			b.WriteString(formatField(r[h]))
		}
	}
	return b.String()
}

// formatField entrecomilla los valores textuales; el resto se escribe en su forma plana.
// Los punteros se desreferencian; un puntero nil es un campo vacío.
func formatField(v any) string {
	if v == nil {
		return ""
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		return formatField(rv.Elem().Interface())
	}

	switch x := v.(type) {
	case string:
		return quoteText(x)
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case uint16:
		return strconv.FormatUint(uint64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case decimal.Decimal:
		return x.String()
	case time.Time:
		return quoteText(x.Format(time.RFC3339))
	default:
		return quoteText(fmt.Sprint(x))
	}
}

func quoteText(s string) string {
	return quote + strings.ReplaceAll(s, quote, quote+quote) + quote
}

// Decode interpreta la primera línea como cabecera y el resto como filas.
// Acepta CRLF o LF y descarta un BOM UTF-8 inicial (exportaciones de Excel).
func Decode(text string) []Record {
	lines := lineSplit.Split(stripBOM(text), -1)
	records := []Record{}
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return records
	}

	headers := splitFields(lines[0])
	for _, line := range lines[1:] {
		fields := splitFields(line)
		rec := make(Record, len(headers))
		blank := true
		for i, h := range headers {
			v := ""
			if i < len(fields) {
				v = fields[i]
			}
			if v != "" {
				blank = false
			}
			rec[h] = v
		}
		if blank {
			continue
		}
		records = append(records, rec)
	}
	return records
}

// splitFields separa en todas las comas, recorta y deshace el entrecomillado de campos completos.
func splitFields(line string) []string {
	parts := strings.Split(line, separator)
	for i, p := range parts {
		parts[i] = unquoteField(strings.TrimSpace(p))
	}
	return parts
}

func unquoteField(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, quote) && strings.HasSuffix(s, quote) {
		return strings.ReplaceAll(s[1:len(s)-1], quote+quote, quote)
	}
	return s
}

// stripBOM quita solo la marca inicial; el resto del texto no se toca.
func stripBOM(text string) string {
	return strings.TrimPrefix(text, bom)
}
