package main

import (
	"context"

	"github.com/weegigs/tally-go/stores/ddb"
	"github.com/weegigs/tally-go/support"
)

func live(ctx context.Context) (GatewayHandler, func(), error) {
	cfg, err := support.AWSConfig(ctx)
	if err != nil {
		return nil, nil, err
	}

	table, err := ddb.LiveChangeTableName()
	if err != nil {
		return nil, nil, err
	}

	changelog := ddb.NewChangeLog(ddb.Client(cfg), table)

	return createHandler(changelog), changelog.Close, nil
}
