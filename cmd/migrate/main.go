// Command migrate aplica o revierte el esquema embebido.
//
//	migrate up        aplica todas las migraciones pendientes
//	migrate down      revierte todas
//	migrate steps N   avanza (N>0) o retrocede (N<0) N migraciones
//	migrate version   muestra la versión actual
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jhoicas/Retail-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Retail-api/pkg/config"
	"github.com/jhoicas/Retail-api/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: migrate up|down|steps N|version")
		os.Exit(2)
	}
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "migrate"})

	m, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar migraciones")
	}
	defer m.Close()

	switch os.Args[1] {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "steps":
		if len(os.Args) < 3 {
			log.Fatal().Msg("steps requiere N")
		}
		n, convErr := strconv.Atoi(os.Args[2])
		if convErr != nil {
			log.Fatal().Err(convErr).Msg("N inválido")
		}
		err = m.Steps(n)
	case "version":
		v, dirty, verr := m.Version()
		if verr != nil {
			log.Fatal().Err(verr).Msg("leer versión")
		}
		log.Info().Uint("version", v).Bool("dirty", dirty).Msg("versión del esquema")
		return
	default:
		log.Fatal().Str("cmd", os.Args[1]).Msg("comando desconocido")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("migración")
	}
	log.Info().Str("cmd", os.Args[1]).Msg("migración completada")
}
