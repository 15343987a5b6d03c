package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/vashchenko/go_pair_tags/common/core/tagcollector"
	"github.com/vashchenko/go_pair_tags/common/core/tagging"
	"github.com/vashchenko/go_pair_tags/common/external/subgraphs"
	"github.com/vashchenko/go_pair_tags/common/helpers/envhelper"
	"github.com/vashchenko/go_pair_tags/common/models"
	"github.com/vashchenko/go_pair_tags/common/periphery/kafkatags"
	"github.com/vashchenko/go_pair_tags/common/periphery/pgdatabase"
	"github.com/vashchenko/go_pair_tags/common/repo/tagrepo"
)

func main() {
	env, err := envhelper.GetEnv()
	if err != nil {
		logrus.Fatal(err)
	}

	ctx := context.Background()
	networkID := env.NETWORK_ID

	subgraphClient, err := subgraphs.NewSubgraphClient(subgraphs.SubgraphClientConfig{
		APIKey: env.SUBGRAPH_API_TOKEN,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	// Preflight: surface subgraph lag before a long walk. Non-fatal.
	meta, err := subgraphClient.GetSubgraphMeta(ctx, networkID)
	if err != nil {
		logrus.WithField("network", networkID).Warnf("unable to read subgraph meta: %v", err)
	} else {
		logrus.WithFields(logrus.Fields{
			"network":         networkID,
			"indexed_block":   meta.Block.Number,
			"indexing_errors": meta.HasIndexingErrors,
		}).Info("subgraph meta")
	}

	tags, err := tagcollector.CollectTags(ctx, subgraphClient, networkID)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := writeCSV(env.CSV_OUTPUT_PATH, tags); err != nil {
		logrus.Fatal(err)
	}

	if env.PostgresEnabled() {
		if err := storeTags(env, networkID, tags); err != nil {
			logrus.Fatal(err)
		}
		logrus.WithField("tags", len(tags)).Info("upserted tags into postgres")
	}

	if env.KafkaEnabled() {
		if err := publishTags(ctx, env, networkID, tags); err != nil {
			logrus.Fatal(err)
		}
		logrus.WithField("tags", len(tags)).Info("published tags to kafka")
	}
}

func writeCSV(path string, tags []models.ContractTag) error {
	rendered := tagging.RenderCSV(tags)
	if path == "" {
		fmt.Print(rendered)
		return nil
	}

	return os.WriteFile(path, []byte(rendered), 0o644)
}

func storeTags(env *envhelper.Environment, networkID string, tags []models.ContractTag) error {
	pgDB, err := pgdatabase.New(pgdatabase.PgDatabaseConfig{
		Host:     env.POSTGRES_HOST,
		Port:     env.POSTGRES_PORT,
		User:     env.POSTGRES_USER,
		Password: env.POSTGRES_PASSWORD,
		DBName:   env.POSTGRES_DB_NAME,
		SSLMode:  env.POSTGRES_SSL_MODE,
	})
	if err != nil {
		return err
	}
	defer pgDB.Close()

	tagDBRepo, err := tagrepo.NewDBRepo(tagrepo.TagDBRepoDependencies{
		Database: pgDB,
	})
	if err != nil {
		return err
	}

	return tagDBRepo.UpsertTags(networkID, tags)
}

func publishTags(ctx context.Context, env *envhelper.Environment, networkID string, tags []models.ContractTag) error {
	publisher, err := kafkatags.NewPairTagsPublisher(kafkatags.PairTagsPublisherConfig{
		KafkaServer: env.KAFKA_SERVER,
		KafkaTopic:  env.KAFKA_PAIR_TAGS_TOPIC,
	})
	if err != nil {
		return err
	}
	defer publisher.Close()

	return publisher.PublishTags(ctx, networkID, tags)
}
