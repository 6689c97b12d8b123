package lcuclient

import "testing"

func TestUpdateAuthURL(t *testing.T) {
	lc := New()

	if !lc.UpdateAuthURL("riot:abc@127.0.0.1:1234") {
		t.Fatal("первое значение должно считаться изменением")
	}
	if lc.UpdateAuthURL("riot:abc@127.0.0.1:1234") {
		t.Fatal("повтор того же url не должен считаться изменением")
	}
	if !lc.UpdateAuthURL("riot:def@127.0.0.1:1234") {
		t.Fatal("смена токена — изменение")
	}
	if lc.AuthURL() != "riot:def@127.0.0.1:1234" {
		t.Fatalf("authURL = %q", lc.AuthURL())
	}
}

func TestCloseIdempotent(t *testing.T) {
	lc := New()
	lc.UpdateAuthURL("riot:abc@127.0.0.1:1234")
	lc.SetRunning(true)

	// закрытие без сокета — валидный no-op, но authURL сбрасывается
	lc.Close()
	if lc.AuthURL() != "" {
		t.Fatalf("после Close authURL должен быть пуст, а не %q", lc.AuthURL())
	}
	if lc.IsConnected() {
		t.Fatal("после Close не должно быть соединения")
	}

	// повторный Close ничего не ломает
	lc.Close()
	if lc.AuthURL() != "" || lc.IsConnected() {
		t.Fatal("повторный Close изменил состояние")
	}
}

func TestParseAuthURL(t *testing.T) {
	tests := []struct {
		name    string
		authURL string
		host    string
		header  string
		wantErr bool
	}{
		{
			name:    "обычные креды",
			authURL: "riot:abc@127.0.0.1:54321",
			host:    "127.0.0.1:54321",
			// base64("riot:abc")
			header: "Basic cmlvdDphYmM=",
		},
		{
			name:    "без пароля",
			authURL: "riot@127.0.0.1:54321",
			wantErr: true,
		},
		{
			name:    "без кредов вовсе",
			authURL: "127.0.0.1:54321",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, header, err := parseAuthURL(tt.authURL)
			if tt.wantErr {
				if err == nil {
					t.Fatal("ожидали ошибку")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if host != tt.host {
				t.Errorf("host = %q, ожидали %q", host, tt.host)
			}
			if header != tt.header {
				t.Errorf("header = %q, ожидали %q", header, tt.header)
			}
		})
	}
}
