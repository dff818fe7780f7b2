package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/coreseekdev/loom/pkg/keyaction"
	"github.com/coreseekdev/loom/pkg/lsp/client"
	"github.com/coreseekdev/loom/pkg/lsp/transport"
	"github.com/coreseekdev/loom/pkg/search"
	"github.com/coreseekdev/loom/pkg/session"
)

// loom is a line-oriented demo host for the editor core: it opens a
// document.Document-backed session, optionally spawns a language
// server over stdio and wires it in via pkg/lsp/client, and dispatches
// simple typed commands to pkg/keyaction so the core can be driven from
// a terminal instead of a GUI.
func main() {
	var (
		filePath = flag.String("file", "", "path to the file to open")
		lspCmd   = flag.String("lsp", "", "command to launch a language server over stdio (optional)")
		langID   = flag.String("lang", "text", "language identifier reported to the language server")
	)
	flag.Parse()

	if *filePath == "" {
		log.Fatal("loom: -file is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Println("loom: shutting down...")
		cancel()
		os.Exit(0)
	}()

	storage := session.NewMemoryContentStorage()
	if err := loadFileIntoStorage(ctx, storage, *filePath); err != nil {
		log.Fatalf("loom: failed to load %s: %v", *filePath, err)
	}

	var lspClient *client.Client
	if *lspCmd != "" {
		c, err := dialStdioServer(ctx, *lspCmd)
		if err != nil {
			log.Fatalf("loom: failed to launch language server: %v", err)
		}
		if _, err := c.Initialize(ctx, "file://"+workingDir()); err != nil {
			log.Fatalf("loom: initialize failed: %v", err)
		}
		lspClient = c
		log.Printf("loom: connected to language server %q", *lspCmd)
	}

	manager := session.NewManager(storage)
	sess, err := manager.Open(ctx, *filePath, *langID, lspClient)
	if err != nil {
		log.Fatalf("loom: failed to open session: %v", err)
	}

	log.Println("==========================================")
	log.Println("  loom editor core — interactive shell")
	log.Println("==========================================")
	log.Printf("Opened %s (%d runes)", sess.URI, sess.Doc.Length())
	log.Println("Type 'help' for commands, 'quit' to exit.")

	runShell(ctx, manager, sess)
}

func workingDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

func loadFileIntoStorage(ctx context.Context, storage *session.MemoryContentStorage, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, err = storage.Save(ctx, path, &session.ContentModel{
		Name: path, Type: "file", Content: string(data),
	}, nil)
	return err
}

// dialStdioServer launches cmdLine as a subprocess and wires its
// stdin/stdout as a Content-Length-framed JSON-RPC transport, the way
// an editor host talks to a language server binary.
func dialStdioServer(ctx context.Context, cmdLine string) (*client.Client, error) {
	parts := strings.Fields(cmdLine)
	cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	framer := transport.NewStreamFramer(&stdioPipe{ReadCloser: stdout, Writer: stdin})
	t := transport.New(framer, transport.DefaultTimeout)
	go t.Run()
	return client.New(t), nil
}

// stdioPipe adapts a subprocess's separate stdin/stdout pipes into the
// single io.ReadWriteCloser transport.StreamFramer expects.
type stdioPipe struct {
	io.ReadCloser
	io.Writer
}

// runShell reads one command per line from stdin and dispatches it
// against the open session until "quit" or EOF.
func runShell(ctx context.Context, manager *session.Manager, sess *session.Session) {
	mapper := keyaction.New()
	scanner := bufio.NewScanner(os.Stdin)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd := fields[0]

		switch cmd {
		case "quit", "exit":
			return
		case "help":
			printHelp()
		case "text":
			fmt.Println(sess.Doc.Text())
		case "cursor":
			s := sess.Doc.Selection()
			fmt.Printf("base=%d extent=%d\n", s.Base, s.Extent)
		case "save":
			if err := manager.Save(ctx, sess.URI); err != nil {
				fmt.Println("error:", err)
				continue
			}
			fmt.Println("saved")
		case "find":
			if len(fields) < 2 {
				fmt.Println("usage: find <pattern>")
				continue
			}
			query, err := search.New(strings.Join(fields[1:], " "), search.Options{})
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			for _, m := range query.Find(sess.Doc.Text()) {
				fmt.Printf("  [%d,%d)\n", m.Start, m.End)
			}
		default:
			act := keyaction.Action(cmd)
			opts := keyaction.Options{}
			if len(fields) > 1 {
				if n, err := strconv.Atoi(fields[1]); err == nil {
					opts.PageSize = n
				}
			}
			if err := mapper.Dispatch(sess.Doc, act, opts); err != nil {
				fmt.Println("error:", err)
			}
		}
	}
}

func printHelp() {
	fmt.Println(`commands:
  text                 print the document's current text
  cursor               print the current selection
  find <pattern>       search for a literal or regex pattern
  save                 persist the document back to storage
  quit                 exit the shell
  <action>             dispatch a keyaction.Action, e.g. move_right, undo, indent`)
}
