package config

import "testing"

func TestDBConfigValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		cfg     DBConfig
		wantErr bool
	}{
		{"postgres with dsn", DBConfig{Driver: DBDriverPostgres, DSN: "postgres://localhost/media"}, false},
		{"sqlite with dsn", DBConfig{Driver: DBDriverSQLite, DSN: "file::memory:?cache=shared"}, false},
		{"missing dsn", DBConfig{Driver: DBDriverPostgres}, true},
		{"unknown driver", DBConfig{Driver: "mysql", DSN: "x"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestAppConfigEnvChecks(t *testing.T) {
	t.Parallel()

	app := AppConfig{Env: "DEV"}
	if !app.IsDev() || app.IsProd() {
		t.Fatal("env matching should be case-insensitive")
	}
}
