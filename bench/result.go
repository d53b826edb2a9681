package bench

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/colorfulnotion/combinebench/timing"
)

// WriteSums prints one "result_<variant> : <sum>" line per variant.
func (res *Result) WriteSums(w io.Writer) error {
	for _, s := range res.Sums {
		if _, err := fmt.Fprintf(w, "result_%s : %d\n", s.Name, s.Sum); err != nil {
			return err
		}
	}
	return nil
}

// WriteText prints the sums followed by the rendered reports.
func (res *Result) WriteText(w io.Writer) error {
	if err := res.WriteSums(w); err != nil {
		return err
	}
	if err := res.Last.Render(w); err != nil {
		return err
	}
	if res.Averages != nil {
		return res.Averages.Render(w)
	}
	return nil
}

func (res *Result) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// Reports returns the interval report followed by the averages, if any.
func (res *Result) Reports() []timing.Report {
	out := []timing.Report{res.Last}
	if res.Averages != nil {
		out = append(out, *res.Averages)
	}
	return out
}
