package shopee

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// Signature вычисляет подпись запроса к Shopee Affiliate API.
// Порядок конкатенации ключ+timestamp+payload+secret и hex-кодирование —
// контракт протокола: сервер проверяет подпись байт в байт.
func Signature(appKey, appSecret string, timestamp int64, payload []byte) string {
	raw := appKey + strconv.FormatInt(timestamp, 10) + string(payload) + appSecret
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
