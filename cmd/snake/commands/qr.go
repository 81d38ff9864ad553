package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	qrcode "github.com/skip2/go-qrcode"
)

// printQR writes content as a QR code drawn with half block characters, two
// modules per line. Light modules are the drawn ones so the code reads on a
// dark terminal.
func printQR(w io.Writer, content string) error {
	qr, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return errors.Wrap(err, "unable to encode qr code")
	}
	bitmap := qr.Bitmap()

	b := strings.Builder{}
	for y := 0; y < len(bitmap); y += 2 {
		for x := range bitmap[y] {
			top := !bitmap[y][x]
			bottom := y+1 >= len(bitmap) || !bitmap[y+1][x]
			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
		b.WriteRune('\n')
	}
	_, err = fmt.Fprint(w, b.String())
	return err
}

// spectatorURL is where the api can be reached for a listen address.
func spectatorURL(listen string) string {
	if strings.HasPrefix(listen, ":") {
		listen = "localhost" + listen
	}
	return fmt.Sprintf("http://%s/sessions", listen)
}
