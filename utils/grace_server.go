package utils

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Zero-downtime restarts: SIGUSR2 forks a replacement process that inherits
// the listening socket on fd 3, then the old process drains and exits.
// SIGTERM drains and exits without a replacement.

const (
	serverReadTimeout  = 60 * time.Second
	serverWriteTimeout = 60 * time.Second
	drainTimeout       = 30 * time.Second

	inheritEnvKey   = "FEATHERPRESS_INHERIT_FD"
	inheritEnvPair  = inheritEnvKey + "=1"
	inheritedSockFd = 3
)

type graceServer struct {
	httpServer *http.Server
	listener   net.Listener
	inherited  bool
	drained    chan struct{}
}

// GraceServer serves handler on addr until SIGTERM, handing the socket over
// to a freshly exec'd copy of the binary on SIGUSR2.
func GraceServer(addr string, handler http.Handler) error {
	gs := &graceServer{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  serverReadTimeout,
			WriteTimeout: serverWriteTimeout,
		},
		inherited: os.Getenv(inheritEnvKey) != "",
		drained:   make(chan struct{}),
	}
	return gs.run()
}

func (gs *graceServer) run() error {
	ln, err := gs.listen()
	if err != nil {
		return err
	}
	gs.listener = ln

	go gs.watchSignals()

	err = gs.httpServer.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}
	<-gs.drained
	return err
}

func (gs *graceServer) listen() (net.Listener, error) {
	if gs.inherited {
		ln, err := net.FileListener(os.NewFile(inheritedSockFd, "listener"))
		if err != nil {
			return nil, fmt.Errorf("inherit listener: %w", err)
		}
		return ln, nil
	}
	ln, err := net.Listen("tcp", gs.httpServer.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", gs.httpServer.Addr, err)
	}
	return ln, nil
}

func (gs *graceServer) watchSignals() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGTERM, syscall.SIGUSR2)

	for sig := range sigs {
		switch sig {
		case syscall.SIGTERM:
			logInfo("SIGTERM received, draining connections")
			gs.drain()
			return
		case syscall.SIGUSR2:
			pid, err := gs.forkSuccessor()
			if err != nil {
				logErrorf("graceful restart failed, keeping current process: %v", err)
				continue
			}
			logInfof("successor pid=%d started, draining old process", pid)
			gs.drain()
			return
		}
	}
}

func (gs *graceServer) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	if err := gs.httpServer.Shutdown(ctx); err != nil {
		logErrorf("shutdown: %v", err)
	}
	close(gs.drained)
}

// forkSuccessor re-execs the current binary with the listening socket as
// fd 3 and the inherit marker in the environment.
func (gs *graceServer) forkSuccessor() (int, error) {
	tcpLn, ok := gs.listener.(*net.TCPListener)
	if !ok {
		return 0, fmt.Errorf("listener %T cannot be handed over", gs.listener)
	}
	file, err := tcpLn.File()
	if err != nil {
		return 0, fmt.Errorf("listener fd: %w", err)
	}

	env := make([]string, 0, len(os.Environ())+1)
	for _, e := range os.Environ() {
		if e != inheritEnvPair {
			env = append(env, e)
		}
	}
	env = append(env, inheritEnvPair)

	pid, err := syscall.ForkExec(os.Args[0], os.Args, &syscall.ProcAttr{
		Env:   env,
		Files: []uintptr{os.Stdin.Fd(), os.Stdout.Fd(), os.Stderr.Fd(), file.Fd()},
	})
	if err != nil {
		return 0, fmt.Errorf("forkexec: %w", err)
	}
	return pid, nil
}

func logInfo(msg string) {
	if Sugar != nil {
		Sugar.Info(msg)
	}
}

func logInfof(format string, args ...interface{}) {
	if Sugar != nil {
		Sugar.Infof(format, args...)
	}
}

func logErrorf(format string, args ...interface{}) {
	if Sugar != nil {
		Sugar.Errorf(format, args...)
	}
}
