package query

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/linkjun/jsonuri/cmd/jsonuri/internal/cmdio"
)

func runQuery(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := Run(context.Background(), args, cmdio.Streams{In: strings.NewReader(input), Out: &out, Err: &errOut})
	return out.String(), err
}

func TestRun(t *testing.T) {
	input := `{"servers":[{"name":"a","port":80},{"name":"b","port":8080}],"paths":{"/api":1}}`

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "wildcard", args: []string{"$.servers[*].port"}, want: "/servers/0/port\t80\n/servers/1/port\t8080\n"},
		{name: "filter", args: []string{"$.servers[?@.port > 100].name"}, want: "/servers/1/name\t\"b\"\n"},
		{name: "escaped key", args: []string{"$.paths['/api']"}, want: "/paths/~1api\t1\n"},
		{name: "paths only", args: []string{"-paths", "$.servers[0]"}, want: "/servers/0\n"},
		{name: "no match", args: []string{"$.missing"}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := runQuery(t, input, tt.args...)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("Run() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRun_YAML(t *testing.T) {
	got, err := runQuery(t, "a:\n  - x\n  - y\n", "-format", "yaml", "$.a[-1]")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got != "/a/1\t\"y\"\n" {
		t.Fatalf("Run() = %q", got)
	}
}

func TestRun_Errors(t *testing.T) {
	if _, err := runQuery(t, `{}`); err == nil {
		t.Fatal("missing expression should fail")
	}
	if _, err := runQuery(t, `{}`, "$.["); err == nil {
		t.Fatal("invalid expression should fail")
	}
}
