package envstruct_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/liftlog/internal/envstruct"
)

func TestPopulate(t *testing.T) {
	unset := func(_ string) (string, bool) { return "", false }
	tests := []struct {
		name      string
		v         any
		lookupEnv func(string) (string, bool)
		want      any
		wantErr   error
	}{
		{
			name:      "nil",
			v:         nil,
			lookupEnv: unset,
			wantErr:   envstruct.ErrInvalidValue,
		},
		{
			name:      "not pointer",
			v:         struct{}{},
			lookupEnv: unset,
			wantErr:   envstruct.ErrInvalidValue,
		},
		{
			name:      "empty struct",
			v:         &struct{}{},
			lookupEnv: unset,
			want:      &struct{}{},
		},
		{
			name: "missing env without default",
			v: &struct {
				URL string `env:"LIFTLOG_SQLITE_URL"`
			}{},
			lookupEnv: unset,
			wantErr:   envstruct.ErrEnvNotSet,
		},
		{
			name: "picks correct env variable",
			v: &struct {
				URL   string `env:"LIFTLOG_SQLITE_URL"`
				Level string `env:"LIFTLOG_LOG_LEVEL"`
				Other string
			}{},
			lookupEnv: func(s string) (string, bool) { return strings.ToLower(s), true },
			want: &struct {
				URL   string `env:"LIFTLOG_SQLITE_URL"`
				Level string `env:"LIFTLOG_LOG_LEVEL"`
				Other string
			}{URL: "liftlog_sqlite_url", Level: "liftlog_log_level"},
		},
		{
			name: "defaults for all supported kinds",
			v: &struct {
				URL     string `env:"LIFTLOG_SQLITE_URL" envDefault:"./liftlog.sqlite3"`
				Horizon int    `env:"LIFTLOG_PLAN_HORIZON_DAYS" envDefault:"60"`
				Verbose bool   `env:"LIFTLOG_VERBOSE" envDefault:"true"`
			}{},
			lookupEnv: unset,
			want: &struct {
				URL     string `env:"LIFTLOG_SQLITE_URL" envDefault:"./liftlog.sqlite3"`
				Horizon int    `env:"LIFTLOG_PLAN_HORIZON_DAYS" envDefault:"60"`
				Verbose bool   `env:"LIFTLOG_VERBOSE" envDefault:"true"`
			}{URL: "./liftlog.sqlite3", Horizon: 60, Verbose: true},
		},
		{
			name: "env overrides default",
			v: &struct {
				Horizon int `env:"LIFTLOG_PLAN_HORIZON_DAYS" envDefault:"60"`
			}{},
			lookupEnv: func(_ string) (string, bool) { return "14", true },
			want: &struct {
				Horizon int `env:"LIFTLOG_PLAN_HORIZON_DAYS" envDefault:"60"`
			}{Horizon: 14},
		},
		{
			name: "invalid int",
			v: &struct {
				Horizon int `env:"LIFTLOG_PLAN_HORIZON_DAYS"`
			}{},
			lookupEnv: func(_ string) (string, bool) { return "two months", true },
			wantErr:   envstruct.ErrInvalidValue,
		},
		{
			name: "unsupported kind",
			v: &struct {
				Ratio float64 `env:"LIFTLOG_RATIO" envDefault:"0.5"`
			}{},
			lookupEnv: unset,
			wantErr:   envstruct.ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := envstruct.Populate(tt.v, tt.lookupEnv)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Populate() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Populate() unexpected error = %v", err)
			}
			if diff := cmp.Diff(tt.want, tt.v); diff != "" {
				t.Errorf("Populate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
