package state

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"kakao-today-bot/internal/domain"
)

// File хранит отметку в JSON-файле. Запись идёт через временный файл
// и rename, чтобы параллельный читатель не увидел обрывок.
type File struct {
	path string
}

// NewFile создаёт файловое хранилище по указанному пути.
func NewFile(path string) *File {
	return &File{path: path}
}

// Load читает отметку. Отсутствующий или нечитаемый файл — не ошибка,
// а пустое состояние: прошлые прогоны могли ничего не отправлять.
func (f *File) Load(_ context.Context) (domain.SentMark, bool, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.SentMark{}, false, nil
		}
		return domain.SentMark{}, false, fmt.Errorf("чтение %s: %w", f.path, err)
	}
	var mark domain.SentMark
	if err := json.Unmarshal(raw, &mark); err != nil {
		// битый файл равнозначен отсутствию записи
		return domain.SentMark{}, false, nil
	}
	if mark.Date == "" && mark.DedupeKey == "" {
		return domain.SentMark{}, false, nil
	}
	return mark, true, nil
}

// Save атомарно перезаписывает файл состояния.
func (f *File) Save(_ context.Context, mark domain.SentMark) error {
	raw, err := json.Marshal(mark)
	if err != nil {
		return fmt.Errorf("кодирование отметки: %w", err)
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("каталог состояния: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".sent-*.json")
	if err != nil {
		return fmt.Errorf("временный файл: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("запись состояния: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("закрытие временного файла: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("замена файла состояния: %w", err)
	}
	return nil
}

var _ domain.StateStore = (*File)(nil)
