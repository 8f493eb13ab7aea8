package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Keys must be prefixed by entity type so different records never collide.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

func LanguageUUID(code string) uuid.UUID {
	return UUID("agriconnect:language:" + strings.ToLower(strings.TrimSpace(code)))
}

// ProfileUUID keys a profile row on the external identity key, so a webhook
// insert and a lazy upsert for the same user target the same row id.
func ProfileUUID(identityKey string) uuid.UUID {
	return UUID("agriconnect:profile:" + strings.TrimSpace(identityKey))
}

func AdvisoryUUID(kind, topicKey, languageCode string) uuid.UUID {
	return UUID("agriconnect:advisory:" + strings.ToLower(strings.TrimSpace(kind)) + ":" +
		strings.TrimSpace(topicKey) + ":" + strings.ToLower(strings.TrimSpace(languageCode)))
}

func MarketPriceUUID(cropKey, marketKey, date string) uuid.UUID {
	return UUID("agriconnect:market_price:" + strings.TrimSpace(cropKey) + ":" +
		strings.TrimSpace(marketKey) + ":" + strings.TrimSpace(date))
}
