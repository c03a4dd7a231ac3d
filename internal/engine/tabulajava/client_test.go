package tabulajava

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/joseph-ayodele/pdf2csv/constants"
	"github.com/joseph-ayodele/pdf2csv/internal/common"
	"github.com/joseph-ayodele/pdf2csv/internal/extract"
	"github.com/joseph-ayodele/pdf2csv/internal/table"
)

const twoTables = `[
  {"extraction_method":"lattice","page_number":1,"top":10.0,"left":20.0,"width":100.0,"height":50.0,
   "data":[[{"top":10,"left":20,"width":50,"height":10,"text":"A"},{"text":"B"}],
           [{"text":"1"},{"text":""}]]},
  {"extraction_method":"lattice","page_number":2,
   "data":[[{"text":" X "}],[{"text":null}]]}
]`

type fakeRunner struct {
	name    string
	args    []string
	stdout  string
	stderr  string
	err     error
	lookErr error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.name = name
	f.args = args
	return []byte(f.stdout), []byte(f.stderr), f.err
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	if f.lookErr != nil {
		return "", f.lookErr
	}
	return "/usr/bin/" + name, nil
}

func newTestClient(t *testing.T, r *fakeRunner) *Client {
	t.Helper()
	jar := filepath.Join(t.TempDir(), "tabula.jar")
	if err := os.WriteFile(jar, []byte("PK"), 0o644); err != nil {
		t.Fatalf("write jar: %v", err)
	}
	return NewClient(Config{TabulaJar: jar, JavaOpts: []string{"-Dfile.encoding=UTF8"}}, nil).WithRunner(r)
}

func TestClient_ExtractDecodesTables(t *testing.T) {
	r := &fakeRunner{stdout: twoTables}
	c := newTestClient(t, r)

	got, err := c.Extract(context.Background(), extract.Params{
		Path: "in.pdf", Pages: extract.AllPages, Mode: constants.Lattice, Guess: true,
	})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	want := []table.Raw{
		{Rows: [][]any{{"A", "B"}, {"1", ""}}, Page: 1},
		{Rows: [][]any{{" X "}, {nil}}, Page: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tables mismatch (-want +got):\n%s", diff)
	}
	if r.name != "java" {
		t.Fatalf("expected java to be invoked, got %q", r.name)
	}
}

func TestClient_Args(t *testing.T) {
	r := &fakeRunner{stdout: "[]"}
	c := newTestClient(t, r)

	tests := []struct {
		name   string
		params extract.Params
		want   []string
		absent []string
	}{
		{
			name:   "lattice with guess",
			params: extract.Params{Path: "doc.pdf", Pages: extract.AllPages, Mode: constants.Lattice, Guess: true},
			want:   []string{"--lattice", "--guess", "--pages all", "--format JSON"},
			absent: []string{"--stream", "--area", "--columns", "--silent"},
		},
		{
			name: "stream with area and columns",
			params: extract.Params{
				Path:    "doc.pdf",
				Pages:   extract.PageSpec{Ranges: []extract.PageRange{{From: 1, To: 3}, {From: 5, To: 5}}},
				Area:    &extract.Area{Top: 110, Left: 28, Bottom: 555, Right: 820},
				Columns: []float64{95, 245.5},
				Mode:    constants.Stream,
			},
			want:   []string{"--stream", "--pages 1-3,5", "--area 110,28,555,820", "--columns 95,245.5"},
			absent: []string{"--lattice", "--guess", "--silent"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.Extract(context.Background(), tt.params); err != nil {
				t.Fatalf("Extract: %v", err)
			}
			line := strings.Join(r.args, " ")
			for _, w := range tt.want {
				if !strings.Contains(line, w) {
					t.Errorf("expected %q in %q", w, line)
				}
			}
			for _, a := range tt.absent {
				if strings.Contains(line, a) {
					t.Errorf("did not expect %q in %q", a, line)
				}
			}
			if r.args[0] != "-Dfile.encoding=UTF8" || r.args[1] != "-jar" {
				t.Errorf("expected JVM opts before -jar, got %v", r.args[:2])
			}
			if r.args[len(r.args)-1] != "doc.pdf" {
				t.Errorf("expected document path last, got %v", r.args)
			}
		})
	}
}

func TestClient_EmptyOutputMeansNoTables(t *testing.T) {
	for _, out := range []string{"", "  \n", "[]"} {
		c := newTestClient(t, &fakeRunner{stdout: out})
		got, err := c.Extract(context.Background(), extract.Params{Path: "x.pdf", Pages: extract.AllPages})
		if err != nil {
			t.Fatalf("Extract(%q): %v", out, err)
		}
		if len(got) != 0 {
			t.Fatalf("Extract(%q): expected no tables, got %d", out, len(got))
		}
	}
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name   string
		runner *fakeRunner
		noJar  bool
		kind   common.Kind
	}{
		{"java missing", &fakeRunner{lookErr: errors.New("not found")}, false, common.KindEngineUnavailable},
		{"jar missing", &fakeRunner{}, true, common.KindEngineUnavailable},
		{"engine crash", &fakeRunner{err: errors.New("exit status 1"), stderr: "Error: bad page"}, false, common.KindExtraction},
		{"not json", &fakeRunner{stdout: "Exception in thread main"}, false, common.KindExtraction},
		{"schema mismatch", &fakeRunner{stdout: `[{"rows":[]}]`}, false, common.KindExtraction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.runner)
			if tt.noJar {
				c.cfg.TabulaJar = filepath.Join(t.TempDir(), "missing.jar")
			}
			_, err := c.Extract(context.Background(), extract.Params{Path: "x.pdf", Pages: extract.AllPages})
			kind, ok := common.KindOf(err)
			if !ok || kind != tt.kind {
				t.Fatalf("expected %s, got %v", tt.kind, err)
			}
		})
	}
}

func TestClient_EngineErrorCarriesStderr(t *testing.T) {
	r := &fakeRunner{err: errors.New("exit status 1"), stderr: "Error: Page number 9 is out of range"}
	c := newTestClient(t, r)
	_, err := c.Extract(context.Background(), extract.Params{Path: "x.pdf", Pages: extract.AllPages})
	if err == nil || !strings.Contains(err.Error(), "Page number 9 is out of range") {
		t.Fatalf("expected stderr in error, got %v", err)
	}
	// --silent would make tabula-java swallow the message asserted above.
	for _, a := range r.args {
		if a == "--silent" {
			t.Fatalf("tabula-java must not run silenced: %v", r.args)
		}
	}
}
