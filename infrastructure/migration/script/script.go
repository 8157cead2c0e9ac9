package main

import (
	"context"
	_ "embed"
	"flag"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/toystore-admin-api/infrastructure/database/postgres"
	"github.com/vfg2006/toystore-admin-api/infrastructure/integrator/toyfeed"
	"github.com/vfg2006/toystore-admin-api/infrastructure/integrator/toyfeed/feedclient"
	"github.com/vfg2006/toystore-admin-api/infrastructure/repository"
	"github.com/vfg2006/toystore-admin-api/internal/config"
	"github.com/vfg2006/toystore-admin-api/pkg/utils"
)

//go:embed schema.sql
var schema string

func setupLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	logrus.Info("Iniciando script de migração...")
}

func main() {
	setupLogger()

	seed := flag.Bool("seed", true, "importa os clientes do feed quando a tabela estiver vazia")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// O script só faz sentido contra o PostgreSQL
	cfg.Database.Driver = config.DatabaseDriverPostgres
	cfg.Database.DSN = "postgres://" + cfg.Database.User + ":" + cfg.Database.Password + "@" + cfg.Database.URL

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	startTime := time.Now()

	if _, err := conn.ExecContext(ctx, schema); err != nil {
		logrus.WithError(err).Fatal("Erro ao criar tabelas")
	}
	logrus.Info("Tabelas criadas ou já existentes")

	if !*seed {
		logrus.Infof("Migração concluída em %v", time.Since(startTime))
		return
	}

	clientRepo := repository.NewClientRepository(conn, utils.NewTimestampIDGenerator())

	existing, err := clientRepo.ListClients(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao consultar clientes existentes")
	}

	if len(existing) > 0 {
		logrus.Infof("Tabela de clientes já possui %d registros, importação ignorada", len(existing))
		return
	}

	clients, err := toyfeed.New(feedclient.NewClient(cfg)).GetClients(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao ler o feed de clientes")
	}

	if err := clientRepo.ImportClients(ctx, clients); err != nil {
		logrus.WithError(err).Fatal("Erro ao importar clientes")
	}

	logrus.WithFields(logrus.Fields{
		"clientes": len(clients),
		"duration": time.Since(startTime).String(),
	}).Info("Migração concluída")
}
