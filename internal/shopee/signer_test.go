package shopee

import "testing"

func TestSignature(t *testing.T) {
	tests := []struct {
		name      string
		appKey    string
		appSecret string
		timestamp int64
		payload   string
		want      string
	}{
		{
			name:      "known vector",
			appKey:    "key",
			appSecret: "secret",
			timestamp: 1700000000,
			payload:   `{"query":"q"}`,
			want:      "5511913ee44bca5040ae1ff5a52e3f173ad56ba0a573c01c7281cfdeba9a6fef",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Signature(tt.appKey, tt.appSecret, tt.timestamp, []byte(tt.payload))
			if got != tt.want {
				t.Errorf("Signature() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSignature_Deterministic(t *testing.T) {
	a := Signature("k", "s", 42, []byte("payload"))
	b := Signature("k", "s", 42, []byte("payload"))
	if a != b {
		t.Errorf("Signature() not deterministic: %s != %s", a, b)
	}

	// Изменение любого компонента меняет подпись.
	if Signature("k2", "s", 42, []byte("payload")) == a {
		t.Error("Signature() should change with app key")
	}
	if Signature("k", "s2", 42, []byte("payload")) == a {
		t.Error("Signature() should change with secret")
	}
	if Signature("k", "s", 43, []byte("payload")) == a {
		t.Error("Signature() should change with timestamp")
	}
}
