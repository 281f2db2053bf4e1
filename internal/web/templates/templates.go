// Package templates renders the HTML surface of the generator.
//
// Components are plain templ.Components so handlers can render full pages
// or HTMX fragments the same way.
package templates

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/JonMunkholm/lotto/internal/core"
	"github.com/a-h/templ"
)

// PageData is everything the index page shows.
type PageData struct {
	Status       core.StoreStatus
	LoadError    string // load failure alert, empty when the table loaded
	Mode         string
	Presets      []string
	Preset       string
	Slots        []string // selected policy per slot
	Count        string
	Errors       []core.ValidationError
	Result       *core.GenerateResult
	SlotPolicies []string // options offered in each slot select
	MaxCount     int
	SlotCount    int
}

// htmlWriter writes markup and keeps the first error.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(parts ...string) {
	for _, s := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) render(ctx context.Context, c templ.Component) {
	if h.err != nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

// Page renders the full index page.
func Page(d PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<!DOCTYPE html><html lang="ko"><head><meta charset="utf-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1">`,
			`<title>로또 조합 생성기</title></head><body><main>`,
			`<h1>로또 조합 생성기</h1>`)
		h.render(ctx, StatusBanner(d.Status, d.LoadError))
		h.render(ctx, GenerateForm(d))
		h.raw(`<section id="results">`)
		if len(d.Errors) > 0 {
			h.render(ctx, ValidationErrors(d.Errors))
		}
		if d.Result != nil {
			h.render(ctx, Results(d.Result))
		}
		h.raw(`</section></main></body></html>`)
		return h.err
	})
}

// StatusBanner shows whether the table is usable.
func StatusBanner(st core.StoreStatus, loadError string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		switch {
		case loadError != "":
			h.raw(`<div class="banner banner-error" role="alert">`)
			h.text(loadError)
			h.raw(`</div>`)
		case st.State == core.StateLoaded:
			h.raw(`<div class="banner banner-ok">`)
			h.text(st.Source)
			h.raw(` · `, strconv.Itoa(st.Rows), `행 · `, strconv.Itoa(st.Slots), `칸`)
			if !st.LoadedAt.IsZero() {
				h.raw(` · `)
				h.text(st.LoadedAt.Format("2006-01-02 15:04:05"))
			}
			h.raw(`</div>`)
		default:
			h.raw(`<div class="banner banner-pending">확률표를 불러오는 중입니다.</div>`)
		}
		return h.err
	})
}

// GenerateForm renders the count input, preset picker and slot selects.
func GenerateForm(d PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<form method="post" action="/generate" hx-post="/generate" hx-target="#results">`)

		h.raw(`<label for="count">조합 개수</label>`,
			`<input type="number" id="count" name="count" min="1" max="`, strconv.Itoa(d.MaxCount), `" value="`)
		h.text(d.Count)
		h.raw(`">`)

		if len(d.Presets) > 0 {
			h.raw(`<label for="preset">프리셋</label><select id="preset" name="preset">`)
			option(h, "", "직접 선택", d.Preset == "")
			for _, name := range d.Presets {
				option(h, name, name, name == d.Preset)
			}
			h.raw(`</select>`)
		}

		h.raw(`<fieldset><legend>칸별 선택 (`)
		h.text(d.Mode)
		h.raw(`)</legend>`)
		for i := 0; i < d.SlotCount; i++ {
			slot := strconv.Itoa(i + 1)
			selected := ""
			if i < len(d.Slots) {
				selected = strings.ToLower(d.Slots[i])
			}
			h.raw(`<label for="slot`, slot, `">`, slot, `칸</label><select id="slot`, slot, `" name="slot`, slot, `">`)
			for _, p := range d.SlotPolicies {
				option(h, p, p, p == selected)
			}
			h.raw(`</select>`)
		}
		h.raw(`</fieldset><button type="submit">생성</button></form>`)
		return h.err
	})
}

func option(h *htmlWriter, value, label string, selected bool) {
	h.raw(`<option value="`)
	h.text(value)
	if selected {
		h.raw(`" selected>`)
	} else {
		h.raw(`">`)
	}
	h.text(label)
	h.raw(`</option>`)
}

// Results renders one generated batch: records in order, a rule after
// every fifth record, and the random-pick line under each record.
func Results(res *core.GenerateResult) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div class="results" data-batch="`)
		h.text(res.BatchID)
		h.raw(`" data-slots="`)
		h.text(strings.Join(res.Slots, ","))
		h.raw(`">`)
		for _, e := range res.Entries {
			if e.Separator {
				h.raw(`<hr>`)
				continue
			}
			r := e.Record
			h.raw(`<div class="record"><p><strong>`)
			h.text(r.Label)
			h.raw(`</strong>: `)
			for i, n := range r.Numbers {
				if i > 0 {
					h.raw(`, `)
				}
				h.raw(`<span class="ball">`, strconv.Itoa(n), `</span>`)
			}
			if r.Suffix != "" {
				h.raw(` <em class="fill fill-`)
				h.text(string(r.Fill))
				h.raw(`">(`)
				h.text(r.Suffix)
				h.raw(`)</em>`)
			}
			h.raw(`</p>`)
			if r.RandomLine != "" {
				h.raw(`<p class="random-line">`)
				h.text(r.RandomLine)
				h.raw(`</p>`)
			}
			h.raw(`</div>`)
		}
		h.raw(`</div>`)
		return h.err
	})
}

// ValidationErrors lists request problems, one per field.
func ValidationErrors(errs []core.ValidationError) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<ul class="alert alert-warning" role="alert">`)
		for _, e := range errs {
			h.raw(`<li data-field="`)
			h.text(e.Field)
			h.raw(`">`)
			h.text(e.Message)
			h.raw(`</li>`)
		}
		h.raw(`</ul>`)
		return h.err
	})
}

// ErrorAlert renders a user-facing error with its support code.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div class="alert alert-error" role="alert"><p>`)
		h.text(message)
		h.raw(`</p>`)
		if action != "" {
			h.raw(`<p class="alert-action">`)
			h.text(action)
			h.raw(`</p>`)
		}
		if code != "" {
			h.raw(`<p class="alert-code">Code: `)
			h.text(code)
			h.raw(`</p>`)
		}
		h.raw(`</div>`)
		return h.err
	})
}
