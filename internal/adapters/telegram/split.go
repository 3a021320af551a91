package telegram

import "strings"

const messageLimit = 4096

// SplitMessage режет текст на части в пределах лимита Telegram.
// Предпочитает границы абзацев, затем переводы строки, в крайнем
// случае режет по лимиту.
func SplitMessage(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	runes := []rune(trimmed)
	if len(runes) <= messageLimit {
		return []string{trimmed}
	}

	var parts []string
	for len(runes) > 0 {
		if len(runes) <= messageLimit {
			appendPart(&parts, runes)
			break
		}

		window := runes[:messageLimit]
		cut := lastBreak(window, "\n\n")
		if cut < 0 {
			cut = lastBreak(window, "\n")
		}
		if cut < 0 {
			cut = messageLimit
		}
		appendPart(&parts, runes[:cut])
		runes = runes[cut:]
		for len(runes) > 0 && runes[0] == '\n' {
			runes = runes[1:]
		}
	}

	if len(parts) == 0 {
		return []string{trimmed}
	}
	return parts
}

func appendPart(parts *[]string, runes []rune) {
	chunk := strings.Trim(string(runes), "\n")
	if chunk != "" {
		*parts = append(*parts, chunk)
	}
}

// lastBreak возвращает позицию после последнего вхождения sep в окне.
func lastBreak(window []rune, sep string) int {
	idx := strings.LastIndex(string(window), sep)
	if idx < 0 {
		return -1
	}
	return len([]rune(string(window)[:idx])) + len([]rune(sep))
}
