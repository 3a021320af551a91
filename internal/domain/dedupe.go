package domain

import (
	"crypto/sha256"
	"encoding/hex"
)

const hashKeyLen = 16

// DedupeKey строит стабильный отпечаток поста для дневной дедупликации.
// Предпочитается URL (читаемо в аудите), при его отсутствии — усечённый
// SHA-256 от заголовка и текста.
func DedupeKey(post Post) string {
	if post.URL != "" {
		return "url:" + post.URL
	}
	sum := sha256.Sum256([]byte(post.Title + "\n" + post.Text))
	return "hash:" + hex.EncodeToString(sum[:])[:hashKeyLen]
}
