package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/pterm/pterm"

	"holdem-session/card"
	"holdem-session/protocol"
)

var (
	addr    = flag.String("addr", "127.0.0.1:4444", "server address")
	name    = flag.String("name", "player", "display name")
	session = flag.String("session", "", "session id to join; empty joins or creates an open session")
	start   = flag.Bool("start", false, "start the game after joining")
	wait    = flag.Duration("wait", 5*time.Second, "how long to print server messages before leaving")
	raw     = flag.Bool("raw", false, "send a raw text frame before joining")
	show    = flag.String("card", "", "print a card given in short form, e.g. As, then continue")
)

func main() {
	flag.Parse()

	if *show != "" {
		c, err := card.ParseCard(*show)
		if err != nil {
			pterm.Error.Printfln("Invalid card %q: %v", *show, err)
			os.Exit(2)
		}
		pterm.Info.Printfln("%s (value %d, %s)", c, c.Value(), c.Suit())
	}

	pterm.Info.Printfln("Connecting to %s", *addr)
	conn, nc, err := protocol.Dial(*addr)
	if err != nil {
		pterm.Error.Printfln("Failed to connect to server: %v", err)
		os.Exit(1)
	}
	defer nc.Close()
	pterm.Success.Println("Connected!")

	if *raw {
		if err := protocol.WriteFrame(nc, []byte("Hello World!")); err != nil {
			pterm.Error.Printfln("Failed to send data: %v", err)
		}
	}
	if err := conn.Send(protocol.Join(*name, *session)); err != nil {
		pterm.Error.Printfln("Failed to send join: %v", err)
		os.Exit(1)
	}

	_ = nc.SetReadDeadline(time.Now().Add(*wait))
	var self protocol.Message
	for {
		m, err := conn.Receive()
		if err != nil {
			var ne net.Error
			switch {
			case errors.As(err, &ne) && ne.Timeout():
				_ = conn.Send(protocol.Leave())
			case errors.Is(err, io.EOF):
				pterm.Warning.Println("Server closed the connection")
			default:
				pterm.Error.Printfln("Receive failed: %v", err)
				os.Exit(1)
			}
			return
		}

		switch m.Type {
		case protocol.TypeWelcome:
			self = m
			pterm.Success.Printfln("Joined session %s as %s", m.SessionID, m.PlayerID)
			if *start {
				_ = conn.Send(protocol.Start())
			}
		case protocol.TypeState:
			printState(m, self)
		case protocol.TypeError:
			pterm.Error.Printfln("%s: %s", m.Code, m.Text)
		case protocol.TypeLeft:
			pterm.Info.Printfln("Left session %s", m.SessionID)
			return
		default:
			pterm.Info.Printfln("%s", m.Type)
		}
	}
}

func printState(m protocol.Message, self protocol.Message) {
	s := m.State
	if s == nil {
		return
	}
	pterm.DefaultSection.Printfln("Session %s #%d  phase=%s  blinds=%d/%d  pot=%d",
		m.SessionID, m.Seq, s.Phase, s.SmallBlind, s.BigBlind, s.Pot)

	data := pterm.TableData{{"#", "Name", "Chips", "Bet", "Status", "Hand"}}
	for i, p := range s.Players {
		status := "playing"
		switch {
		case p.Folded:
			status = "folded"
		case p.SittingOut:
			status = "sitting out"
		}
		seat := strconv.Itoa(i)
		if i == int(s.ButtonIndex) {
			seat += " D"
		}
		if i == int(s.TurnIndex) && s.Phase != "waiting" {
			seat += " *"
		}
		who := p.Name
		if p.ID == self.PlayerID {
			who = pterm.LightCyan(who)
		}
		hand := "-"
		if len(p.Hand) > 0 {
			hand = card.CardList(p.Hand).String()
		}
		data = append(data, []string{seat, who, fmt.Sprint(p.Chips), fmt.Sprint(p.Bet), status, hand})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
