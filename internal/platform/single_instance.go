package platform

import (
	"bufio"
	"errors"
	"fmt"
	"hash/fnv"
	"log"
	"net"
	"strings"
	"sync"
	"time"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const (
	raiseCommand = "raise"
	raiseTimeout = 2 * time.Second
)

// Instance holds the single-instance lock on a loopback port. Later launches
// connect to it and ask the running instance to show its window.
type Instance struct {
	listener net.Listener
	done     chan struct{}

	mu      sync.Mutex
	onRaise func()
}

// AcquireInstance takes the lock for appName. When another instance holds it,
// that instance is asked to raise itself and ErrAlreadyRunning is returned.
func AcquireInstance(appName string) (*Instance, error) {
	address := fmt.Sprintf("127.0.0.1:%d", portFromName(appName))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		if raiseErr := raise(address); raiseErr != nil {
			return nil, fmt.Errorf("acquire instance lock: %w", err)
		}
		return nil, ErrAlreadyRunning
	}
	instance := &Instance{listener: listener, done: make(chan struct{})}
	go instance.serve()
	return instance, nil
}

// OnRaise sets the handler run when another launch asks for the window. It
// runs on the lock's goroutine.
func (instance *Instance) OnRaise(handler func()) {
	instance.mu.Lock()
	instance.onRaise = handler
	instance.mu.Unlock()
}

// Release frees the lock and waits for the listener goroutine to exit.
func (instance *Instance) Release() error {
	if instance == nil || instance.listener == nil {
		return nil
	}
	err := instance.listener.Close()
	<-instance.done
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

func (instance *Instance) serve() {
	defer close(instance.done)
	for {
		conn, err := instance.listener.Accept()
		if err != nil {
			return
		}
		instance.handle(conn)
	}
}

func (instance *Instance) handle(conn net.Conn) {
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(raiseTimeout))
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		log.Printf("[instance] read request: %v", err)
		return
	}
	if strings.TrimSpace(line) != raiseCommand {
		return
	}
	instance.mu.Lock()
	handler := instance.onRaise
	instance.mu.Unlock()
	if handler != nil {
		handler()
	}
}

func raise(address string) error {
	conn, err := net.DialTimeout("tcp", address, raiseTimeout)
	if err != nil {
		return err
	}
	defer conn.Close()
	_ = conn.SetWriteDeadline(time.Now().Add(raiseTimeout))
	_, err = fmt.Fprintln(conn, raiseCommand)
	return err
}

func portFromName(appName string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}
