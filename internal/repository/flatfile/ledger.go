package flatfile

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/frontandrew/matricula/internal/domain"
	"github.com/frontandrew/matricula/internal/pkg/metrics"
)

// Ledger - текстовый реестр: одна запись на строку, только добавление,
// обновление через полную перезапись файла.
// Все операции над одним реестром выполняются по очереди
type Ledger struct {
	name    string
	path    string
	mu      sync.Mutex
	metrics *metrics.Metrics
}

// OpenLedger создает каталог реестра. Сам файл появляется при первой записи
func OpenLedger(name, path string, m *metrics.Metrics) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, domain.StorageError("create ledger directory", err)
	}
	return &Ledger{name: name, path: path, metrics: m}, nil
}

// Path возвращает путь к файлу реестра
func (l *Ledger) Path() string {
	return l.path
}

// Append дописывает одну строку в конец файла
func (l *Ledger) Append(line string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	defer l.observe("append", time.Now())

	return l.appendLocked(line)
}

// AppendChecked читает реестр и дописывает строку, только если check вернул nil.
// Проверка и запись выполняются под одной блокировкой
func (l *Ledger) AppendChecked(line string, check func(lines []string) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	defer l.observe("append", time.Now())

	lines, err := l.readLocked()
	if err != nil {
		return err
	}
	if err := check(lines); err != nil {
		return err
	}
	return l.appendLocked(line)
}

// Lines возвращает все непустые строки реестра. Отсутствующий файл - пустой реестр
func (l *Ledger) Lines() ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	defer l.observe("scan", time.Now())

	return l.readLocked()
}

// Rewrite применяет чистую функцию ко всем строкам и атомарно заменяет файл результатом.
// Если fn вернула ошибку, файл не трогается
func (l *Ledger) Rewrite(fn func(lines []string) ([]string, error)) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	defer l.observe("rewrite", time.Now())

	lines, err := l.readLocked()
	if err != nil {
		return err
	}

	updated, err := fn(lines)
	if err != nil {
		return err
	}

	return l.replaceLocked(updated)
}

func (l *Ledger) appendLocked(line string) error {
	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return l.storageErr("open", err)
	}

	if _, err := file.WriteString(line + "\n"); err != nil {
		file.Close()
		return l.storageErr("append", err)
	}

	if err := file.Close(); err != nil {
		return l.storageErr("close", err)
	}
	return nil
}

func (l *Ledger) readLocked() ([]string, error) {
	file, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, l.storageErr("open", err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, l.storageErr("scan", err)
	}
	return lines, nil
}

// replaceLocked пишет временный файл рядом с реестром и переименовывает его поверх оригинала
func (l *Ledger) replaceLocked(lines []string) error {
	tmp, err := os.CreateTemp(filepath.Dir(l.path), filepath.Base(l.path)+".tmp-*")
	if err != nil {
		return l.storageErr("create temp", err)
	}
	tmpPath := tmp.Name()

	cleanup := func(err error) error {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}

	w := bufio.NewWriter(tmp)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			return cleanup(l.storageErr("write temp", err))
		}
	}
	if err := w.Flush(); err != nil {
		return cleanup(l.storageErr("flush temp", err))
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(l.storageErr("sync temp", err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return l.storageErr("close temp", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return l.storageErr("chmod temp", err)
	}

	if err := os.Rename(tmpPath, l.path); err != nil {
		os.Remove(tmpPath)
		return l.storageErr("replace", err)
	}
	return nil
}

func (l *Ledger) storageErr(op string, err error) error {
	return domain.StorageError(op+" "+l.name+" ledger", err)
}

func (l *Ledger) observe(op string, start time.Time) {
	l.metrics.ObserveStorage(l.name, op, time.Since(start))
}
