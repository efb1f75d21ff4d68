package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/laraabey/Loops-integrated-chatbot/internal/model"
	"github.com/laraabey/Loops-integrated-chatbot/pkg/local"
	"github.com/laraabey/Loops-integrated-chatbot/pkg/widget"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const chatHelp = `/lang     cycle Auto -> EN -> SI
/contact  open the contact form offered by the last reply
/reset    start a new conversation
/close    close the widget
/open     open the widget
/quit     exit`

func newChatCmd() *cobra.Command {
	var (
		server  string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to a running site from the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client := widget.NewClient(server, &http.Client{Timeout: timeout})
			repl := &chatREPL{
				session:     widget.NewSession(widget.NewMachine(), client),
				in:          bufio.NewScanner(cmd.InOrStdin()),
				out:         cmd.OutOrStdout(),
				interactive: isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
			}
			return repl.run(commandContext(cmd))
		},
	}
	cmd.Flags().StringVarP(&server, "server", "s", "http://localhost:3000", "base URL of the site")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "per-request timeout")
	return cmd
}

type chatREPL struct {
	session     *widget.Session
	in          *bufio.Scanner
	out         io.Writer
	interactive bool
}

func (r *chatREPL) run(ctx context.Context) error {
	r.session.Open()
	if r.interactive {
		fmt.Fprintln(r.out, "Loops Integrated assistant. Type /help for commands.")
	}
	for {
		r.prompt()
		line, ok := r.readLine()
		if !ok {
			return r.in.Err()
		}
		quit, err := r.handle(ctx, line)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

func (r *chatREPL) handle(ctx context.Context, line string) (bool, error) {
	switch strings.TrimSpace(line) {
	case "":
		return false, nil
	case "/quit":
		return true, nil
	case "/help":
		fmt.Fprintln(r.out, chatHelp)
	case "/lang":
		r.session.ToggleLanguage()
		fmt.Fprintf(r.out, "language: %s\n", r.session.State().Mode.Label())
	case "/reset":
		r.session.Reset()
		fmt.Fprintln(r.out, "conversation cleared")
	case "/close":
		r.session.Close()
	case "/open":
		r.session.Open()
	case "/contact":
		return false, r.contact(ctx)
	default:
		r.send(ctx, line)
	}
	return false, nil
}

func (r *chatREPL) send(ctx context.Context, line string) {
	if r.session.State().Phase() == widget.PhaseClosed {
		fmt.Fprintln(r.out, "widget is closed, type /open")
		return
	}
	msg, err := r.session.Send(ctx, line)
	if errors.Is(err, widget.ErrNotReady) {
		fmt.Fprintln(r.out, err.Error())
		return
	}
	if err != nil {
		log.Debug().Err(err).Msg("chat request failed")
	}
	r.printMessage(msg)
}

func (r *chatREPL) contact(ctx context.Context) error {
	if err := r.session.ShowContactForm(); err != nil {
		fmt.Fprintln(r.out, err.Error())
		return nil
	}
	var form model.ContactSubmission
	for _, field := range []struct {
		label string
		value *string
	}{
		{"Your Name", &form.Name},
		{"Your Email", &form.Email},
		{"Your Message", &form.Message},
	} {
		if r.interactive {
			fmt.Fprintf(r.out, "%s: ", field.label)
		}
		line, ok := r.readLine()
		if !ok {
			r.session.CancelContactForm()
			return r.in.Err()
		}
		*field.value = line
	}
	if form.Blank() {
		r.session.CancelContactForm()
		fmt.Fprintln(r.out, "all fields are required, form closed")
		return nil
	}
	msg, err := r.session.SubmitContact(ctx, form)
	r.printMessage(msg)
	if r.session.State().ContactFormOpen {
		log.Debug().Err(err).Msg("contact request failed")
		r.session.CancelContactForm()
	}
	return nil
}

func (r *chatREPL) printMessage(msg model.Message) {
	if msg.Content == "" {
		return
	}
	fmt.Fprintf(r.out, "%s %s  %s\n", local.Language(msg.Language).Flag(), msg.Content, msg.Timestamp)
	if msg.ShowContactButton {
		fmt.Fprintln(r.out, "  [Contact Our Team] type /contact")
	}
}

func (r *chatREPL) prompt() {
	if !r.interactive {
		return
	}
	state := r.session.State()
	if state.Phase() == widget.PhaseClosed {
		fmt.Fprint(r.out, "(closed) > ")
		return
	}
	fmt.Fprintf(r.out, "[%s] %s > ", state.Mode.Indicator(), state.Mode.Placeholder())
}

func (r *chatREPL) readLine() (string, bool) {
	if !r.in.Scan() {
		return "", false
	}
	return r.in.Text(), true
}
