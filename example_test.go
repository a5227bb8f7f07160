package mpd_test

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/pior/mpd"
	"github.com/pior/mpd/proto"
)

// Example demonstrates reading the player state.
func Example() {
	ctx := context.Background()

	conn, err := mpd.Dial(ctx, "tcp", "localhost:6600", mpd.Config{
		Timeout: 5 * time.Second,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	status, err := conn.Status(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("state:", status.State, "volume:", status.Volume)

	song, err := conn.CurrentSong(ctx)
	if err != nil {
		log.Fatal(err)
	}
	if song != nil {
		fmt.Println("playing:", song.Tag("Artist"), "-", song.Title)
	}
}

// ExampleList demonstrates decoding a custom command response.
func ExampleList() {
	ctx := context.Background()

	conn, err := mpd.Dial(ctx, "tcp", "localhost:6600", mpd.Config{})
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	songs, err := mpd.List(ctx, conn, mpd.SongDecoder, "find", `(Artist == "Miles Davis")`)
	if err != nil {
		log.Fatal(err)
	}
	for _, s := range songs {
		fmt.Println(s.File)
	}
}

// ExampleConn_Idle demonstrates waiting for changes until stopped.
func ExampleConn_Idle() {
	ctx := context.Background()

	conn, err := mpd.Dial(ctx, "tcp", "localhost:6600", mpd.Config{})
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	stop := make(chan struct{})
	go func() {
		time.Sleep(time.Minute)
		close(stop)
	}()
	go func() {
		<-stop
		conn.NoIdle()
	}()

	changed, err := conn.Idle(ctx, mpd.SubsystemPlayer, mpd.SubsystemMixer)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("changed:", changed)
}

// ExampleConn_ExecBatch demonstrates sending a command list.
func ExampleConn_ExecBatch() {
	ctx := context.Background()

	conn, err := mpd.Dial(ctx, "tcp", "localhost:6600", mpd.Config{})
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	_, err = conn.ExecBatch(ctx,
		proto.NewCommand("clear"),
		proto.NewCommand("add", "Jazz/Kind of Blue"),
		proto.NewCommand("play"),
	)
	var ack *proto.AckError
	if errors.As(err, &ack) {
		fmt.Printf("command %d (%s) failed: %s\n", ack.CommandIndex, ack.Command, ack.Message)
	}
}

// ExampleNewCircuitBreakerConfig demonstrates guarding a connection.
func ExampleNewCircuitBreakerConfig() {
	conn, err := mpd.Dial(context.Background(), "tcp", "localhost:6600", mpd.Config{
		NewCircuitBreaker: mpd.NewCircuitBreakerConfig(
			3,              // maxRequests in half-open state
			time.Minute,    // interval to clear counts
			10*time.Second, // timeout before half-open
		),
	})
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	fmt.Printf("%+v\n", conn.Stats())
}
