package cmd

import (
	"strings"

	"github.com/jsphweid/flattenmidi/constants"
	"github.com/jsphweid/flattenmidi/db"
	"github.com/jsphweid/flattenmidi/flatten"
	"github.com/jsphweid/flattenmidi/model"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "flattenmidi <input_file>",
	Short: "Split polyphonic MIDI files into monophonic voice tracks",
	Long: `Split polyphonic MIDI files into monophonic voice tracks.

Strategies:
  balanced     - Distribute notes evenly across voices
  drop_excess  - Drop notes that exceed the voice limit
  first_fit    - Assign notes to the first available voice (default)`,
	Example: `  flattenmidi input.mid --max-voices 4
  flattenmidi input.mid -v 8 --output output.mid
  flattenmidi input.mid -v 6 --strategy drop_excess --no-auto-optimize`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFlatten(args[0])
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	flags := rootCmd.Flags()
	flags.IntP("max-voices", "v", 0, "maximum number of voices/tracks to create (required)")
	flags.StringP("output", "o", "", "output MIDI file path (default: {input_filename}_Flattened.mid)")
	flags.StringP("strategy", "s", constants.DefaultStrategy, "voice assignment strategy: "+strings.Join(model.StrategyNames(), ", "))
	flags.Bool("no-auto-optimize", false, "use max-voices directly instead of the peak number of simultaneous notes")
	flags.Bool("strict", false, "fail instead of cutting notes when more notes sound at once than there are voices")
	flags.Bool("record", false, "store a summary of the run in DynamoDB")

	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlags(flags)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			log.WithError(err).Fatal("could not read config file")
		}
	}
	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func setupLogging() error {
	level, err := log.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		return &flatten.ConfigError{Err: err}
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	return nil
}

func optionsFromConfig() flatten.Options {
	return flatten.Options{
		MaxVoices:    viper.GetInt("max-voices"),
		Strategy:     viper.GetString("strategy"),
		AutoOptimize: !viper.GetBool("no-auto-optimize"),
		Strict:       viper.GetBool("strict"),
	}
}

func runFlatten(input string) error {
	res, err := flatten.FlattenFile(input, viper.GetString("output"), optionsFromConfig())
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"run_id":    res.Summary.RunId,
		"input":     res.Summary.Input,
		"output":    res.Summary.Output,
		"notes_in":  res.Summary.NumInputNotes,
		"notes_out": res.Summary.NumOutputNotes,
		"dropped":   res.Summary.Dropped,
	}).Info("done")

	if viper.GetBool("record") {
		if err := db.RecordRun(res.Summary); err != nil {
			return err
		}
		log.WithField("run_id", res.Summary.RunId).Info("recorded run")
	}
	return nil
}

// Run executes the command line with args instead of os.Args.
func Run(args []string) error {
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
