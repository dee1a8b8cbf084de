package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"

	"figment/internal/catalog"
	"figment/internal/chat"
)

var (
	charactersFile = flag.String("characters", "characters.json", "Path to the character roster")
	characterID    = flag.Int("character", 0, "Character id to chat with (0 lists the roster)")
	delayMin       = flag.Int("delay-min", 1500, "Minimum reply delay in milliseconds")
	delayMax       = flag.Int("delay-max", 2500, "Maximum reply delay in milliseconds")
)

func main() {
	flag.Parse()

	directory, err := catalog.Load(*charactersFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
	boldCyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	if *characterID == 0 {
		fmt.Println(boldGreen("Available characters:"))
		for _, c := range directory.All() {
			fmt.Printf("  %s %s %s\n", boldCyan(fmt.Sprintf("%3d", c.ID)), c.Name, dim("- "+c.ShortDescription))
		}
		fmt.Println("\nRun again with -character <id> to start chatting.")
		return
	}

	engine := chat.NewEngine(directory, chat.Options{
		Selector:      chat.NewSelector(rand.New(rand.NewSource(time.Now().UnixNano()))),
		ReplyDelayMin: time.Duration(*delayMin) * time.Millisecond,
		ReplyDelayMax: time.Duration(*delayMax) * time.Millisecond,
	})

	conv, err := engine.Open(*characterID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer conv.Close()
	character := conv.Character()

	// Replies land on a timer goroutine; the channel hands them back to
	// the prompt loop.
	replies := make(chan chat.Message, 1)
	unsubscribe := conv.Subscribe(func(ev chat.Event) {
		if ev.Type == chat.EventMessage && ev.Message.Sender == chat.SenderCharacter {
			replies <- *ev.Message
		}
	})
	defer unsubscribe()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Println("\nGoodbye!")
		conv.Close()
		os.Exit(0)
	}()

	fmt.Printf("%s %s\n", boldGreen("Chatting with"), boldCyan(character.Name))
	fmt.Println("Type your message and press Enter. Type 'exit' or press Ctrl+C to quit.")
	fmt.Println()
	fmt.Printf("%s %s\n\n", boldCyan(character.Name+":"), conv.Messages()[0].Text)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(boldGreen("You: "))
		if !scanner.Scan() {
			break
		}
		input := scanner.Text()
		if strings.ToLower(strings.TrimSpace(input)) == "exit" {
			break
		}

		if _, err := conv.Submit(input); err != nil {
			fmt.Println(dim("(" + err.Error() + ")"))
			continue
		}

		fmt.Print(dim(character.Name + " is typing..."))
		reply := <-replies
		fmt.Print("\r\033[K")
		fmt.Printf("%s %s\n\n", boldCyan(character.Name+":"), reply.Text)
	}
}
