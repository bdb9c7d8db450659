// Package lib provides a Go SDK for driving a vaultpost server programmatically.
//
// This package lets an embedding shell (or any Go program) submit wallet and
// mail operations, track them to completion and read connectivity summaries
// without shelling out to the vaultpost CLI binary.
//
// # Quick Start
//
// Create a client and run an import end to end:
//
//	client, err := lib.New(lib.Config{
//	    ServerURL: "http://127.0.0.1:8006",
//	    Wallet:    "Default",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	outcome, err := client.ImportCoins(ctx, lib.ImportOpts{
//	    Paths: []string{"coins/25.stack"},
//	})
//	if err != nil {
//	    // The request never left the machine (validation failure).
//	    log.Fatal(err)
//	}
//	fmt.Println(outcome.OK, outcome.Event.Text)
//
// Every submit method validates locally first, starts the operation on the
// server, polls the resulting task until it settles and produces exactly one
// notification event. Validation failures are returned as an error before any
// network traffic; every other failure mode is folded into the returned
// [TaskOutcome].
//
// # Notifications
//
// By default notification events are only available on the returned
// [TaskOutcome]. To surface them in a UI as they happen, implement [Notifier]
// and set it on [Config]:
//
//	type toaster struct{}
//
//	func (toaster) Notify(_ context.Context, e lib.NotificationEvent) {
//	    showToast(e.Severity, e.Text, e.Duration)
//	}
//
// # Heartbeats
//
// [Client.RunHeartbeat] blocks running the periodic connectivity and summary
// probes, feeding a [StatusSink] until the context is cancelled. It is meant
// to be started once per dashboard-style view:
//
//	go client.RunHeartbeat(ctx, sink, nil)
package lib
