package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/zhouzirui/z-tavern/chatwidget/internal/model/openai"
	"github.com/zhouzirui/z-tavern/chatwidget/internal/render"
	"github.com/zhouzirui/z-tavern/chatwidget/internal/service/widget"
)

const prompt = "you> "

var exitCommands = map[string]bool{
	"exit":  true,
	"quit":  true,
	"/exit": true,
	"/quit": true,
	":q":    true,
}

func newChatCmd() *cobra.Command {
	var (
		message     string
		dumpRequest bool
		model       string
		system      string
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the backend from the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, sender, err := setup()
			if err != nil {
				return err
			}

			w := widget.New(sender, widget.WithHook(func(text string) {
				log.Debug().Int("chars", len(text)).Msg("message submitted")
			}))
			defer w.Close()

			if message != "" {
				err = submitLine(cmd, w, message)
			} else {
				err = repl(cmd, w)
			}
			if err != nil || !dumpRequest {
				return err
			}
			return dumpCreateParams(cmd.OutOrStdout(), openai.NewCreateParams(model, system, w.Messages()))
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Send a single message and exit")
	cmd.Flags().BoolVar(&dumpRequest, "dump-request", false, "Print the transcript as a chat-completion request on exit")
	cmd.Flags().StringVar(&model, "model", openai.ModelGPT35Turbo, "Model name used by --dump-request")
	cmd.Flags().StringVar(&system, "system", "", "System prompt prepended by --dump-request")
	return cmd
}

func repl(cmd *cobra.Command, w *widget.Widget) error {
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())

	fmt.Fprint(out, prompt)
	for scanner.Scan() {
		line := scanner.Text()
		if exitCommands[strings.TrimSpace(line)] {
			break
		}

		w.SetInput(line)
		if err := submitLine(cmd, w, line); err != nil {
			return err
		}
		fmt.Fprint(out, prompt)
	}
	fmt.Fprintln(out)
	return scanner.Err()
}

func submitLine(cmd *cobra.Command, w *widget.Widget, line string) error {
	cycle, err := w.Submit(cmd.Context(), line)
	if err != nil {
		return err
	}

	result, err := cycle.Wait(cmd.Context())
	if err != nil {
		return err
	}

	if result.Outcome == widget.OutcomeReplied || result.Outcome == widget.OutcomeFallback {
		printLine(cmd.OutOrStdout(), render.ProjectMessage(result.Reply))
	}
	return nil
}

func printLine(out io.Writer, line render.Line) {
	fmt.Fprintln(out, render.PlainLine(line))
}

func dumpCreateParams(out io.Writer, params openai.ChatCompletionCreateParams) error {
	log.Debug().Int("messages", len(params.SchemaMessages())).Str("model", params.Model).Msg("dumping chat-completion request")

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(params)
}
