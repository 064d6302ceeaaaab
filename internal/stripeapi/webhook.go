package stripeapi

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidSignature подпись вебхука отсутствует или не совпала.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// DefaultTolerance допустимое расхождение метки времени подписи.
const DefaultTolerance = 5 * time.Minute

// ConstructEvent проверяет заголовок Stripe-Signature
// (формат "t=<unix>,v1=<hex hmac>") и разбирает тело в Event.
// Подписывается строка "<t>.<payload>" ключом webhook secret.
// Любая ошибка проверки возвращается как ErrInvalidSignature,
// обработка события до успешной проверки не начинается.
func ConstructEvent(payload []byte, sigHeader, secret string, now time.Time) (*Event, error) {
	const op = "stripeapi.ConstructEvent"

	timestamp, signatures, err := parseSignatureHeader(sigHeader)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if now.Sub(time.Unix(timestamp, 0)).Abs() > DefaultTolerance {
		return nil, fmt.Errorf("%s: timestamp outside tolerance: %w", op, ErrInvalidSignature)
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := mac.Sum(nil)

	verified := false
	for _, sig := range signatures {
		decoded, decErr := hex.DecodeString(sig)
		if decErr != nil {
			continue
		}
		if hmac.Equal(decoded, expected) {
			verified = true
			break
		}
	}
	if !verified {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidSignature)
	}

	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &event, nil
}

func parseSignatureHeader(header string) (int64, []string, error) {
	if header == "" {
		return 0, nil, ErrInvalidSignature
	}

	var timestamp int64
	var signatures []string
	for _, pair := range strings.Split(header, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) != 2 {
			continue
		}
		switch parts[0] {
		case "t":
			ts, err := strconv.ParseInt(parts[1], 10, 64)
			if err != nil {
				return 0, nil, ErrInvalidSignature
			}
			timestamp = ts
		case "v1":
			signatures = append(signatures, parts[1])
		}
	}
	if timestamp == 0 || len(signatures) == 0 {
		return 0, nil, ErrInvalidSignature
	}
	return timestamp, signatures, nil
}

// SignPayload подписывает тело так, как это делает Stripe. Используется
// в тестах для формирования валидного заголовка.
func SignPayload(payload []byte, secret string, t time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(t.Unix(), 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", t.Unix(), hex.EncodeToString(mac.Sum(nil)))
}
