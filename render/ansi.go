package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/gophlex/synhl"
)

// ANSI writes frags to w as an ANSI-escaped terminal stream, styled by
// pal. It recurses into nested token content so inner tokens (e.g. an
// escape sequence inside a string) are written in their own resolved
// style, and the enclosing token's style resumes after each of them.
func ANSI(w io.Writer, frags []synhl.Fragment, pal *Palette) error {
	for _, f := range frags {
		if err := writeFragmentANSI(w, f, pal); err != nil {
			return err
		}
	}
	return nil
}

func writeFragmentANSI(w io.Writer, f synhl.Fragment, pal *Palette) error {
	if !f.IsToken() {
		s, _ := f.Raw()
		_, err := io.WriteString(w, s)
		return err
	}

	tok := f.Token()
	if nested, ok := tok.Content.Nested(); ok {
		style := pal.ResolveNames(append([]string{tok.Type}, tok.Alias...)...)
		if err := writeCSI(w, style); err != nil {
			return err
		}
		for _, inner := range nested {
			if err := writeFragmentANSI(w, inner, pal); err != nil {
				return err
			}
			// an inner token ends with a reset; restore this token's style
			if inner.IsToken() {
				if err := writeCSI(w, style); err != nil {
					return err
				}
			}
		}
		return writeReset(w)
	}

	style := pal.ResolveNames(append([]string{tok.Type}, tok.Alias...)...)
	if err := writeCSI(w, style); err != nil {
		return err
	}
	if _, err := io.WriteString(w, tok.Content.Text()); err != nil {
		return err
	}
	return writeReset(w)
}

func writeCSI(w io.Writer, s Style) error {
	var csi bytes.Buffer
	csi.WriteString("\033[0")

	if s.FontStyle.Has(Bold) {
		csi.WriteString(";1")
	}
	if s.FontStyle.Has(Italic) {
		csi.WriteString(";3")
	}
	if s.FontStyle.Has(Underline) {
		csi.WriteString(";4")
	}
	if s.FontStyle.Has(Strikethrough) {
		csi.WriteString(";9")
	}

	if s.Foreground != nil {
		r, g, b, _ := s.Foreground.RGBA()
		fmt.Fprintf(&csi, ";38;2;%d;%d;%d", r>>8, g>>8, b>>8)
	}
	if s.Background != nil {
		r, g, b, _ := s.Background.RGBA()
		fmt.Fprintf(&csi, ";48;2;%d;%d;%d", r>>8, g>>8, b>>8)
	}
	csi.WriteByte('m')
	_, err := csi.WriteTo(w)
	return err
}

func writeReset(w io.Writer) error {
	_, err := io.WriteString(w, "\033[0m")
	return err
}
