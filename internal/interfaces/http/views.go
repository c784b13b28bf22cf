package http

import (
	"embed"
	"io/fs"
	nethttp "net/http"
	"strings"

	"github.com/gofiber/template/html/v2"
	"github.com/shopspring/decimal"
)

//go:embed views/*.html
var viewsFS embed.FS

// newViewEngine carga las vistas embebidas. Al ir dentro del binario, los
// tests pueden construir la app completa sin depender del working directory.
func newViewEngine() *html.Engine {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		panic("vistas embebidas: " + err.Error())
	}
	engine := html.NewFileSystem(nethttp.FS(sub), ".html")
	engine.AddFunc("money", money)
	return engine
}

// money formatea un precio con separador de miles y dos decimales
// (ej: 1234500.5 → "1.234.500,50").
func money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	intPart, fracPart, _ := strings.Cut(s, ".")
	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	out := b.String() + "," + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
