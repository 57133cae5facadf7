package logger

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type AsyncFileWriter struct {
	writer  *bufio.Writer
	file    *os.File
	mu      sync.Mutex
	logChan chan []byte
	done    chan struct{}
}

func NewAsyncFileWriter(logFile string, bufferSize int) (*AsyncFileWriter, error) {
	safeLogFile := filepath.Clean(logFile)
	file, err := os.OpenFile(safeLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, err
	}

	aw := &AsyncFileWriter{
		writer:  bufio.NewWriterSize(file, bufferSize),
		file:    file,
		logChan: make(chan []byte, 1000),
		done:    make(chan struct{}),
	}

	go aw.processLogs()

	return aw, nil
}

func (aw *AsyncFileWriter) Write(p []byte) (n int, err error) {
	select {
	case aw.logChan <- append([]byte{}, p...):
		return len(p), nil
	default:
		return 0, nil
	}
}

func (aw *AsyncFileWriter) processLogs() {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case logData := <-aw.logChan:
			aw.mu.Lock()
			if _, err := aw.writer.Write(logData); err != nil {
				fmt.Println("error writing log data to file", err)
			}
			aw.mu.Unlock()
		case <-ticker.C:
			aw.mu.Lock()
			if err := aw.writer.Flush(); err != nil {
				fmt.Println("error flushing log writer", err)
			}
			aw.mu.Unlock()
		case <-aw.done:
			aw.mu.Lock()
			for len(aw.logChan) > 0 {
				if _, err := aw.writer.Write(<-aw.logChan); err != nil {
					fmt.Println("error writing log data to file", err)
				}
			}
			if err := aw.writer.Flush(); err != nil {
				fmt.Println("error flushing log writer", err)
			}
			aw.mu.Unlock()
			return
		}
	}
}

func (aw *AsyncFileWriter) Close() error {
	close(aw.done)
	return aw.file.Close()
}
