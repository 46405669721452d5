package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "gdt").
		WithSynopsis("gdt [opts] command [opts]").
		WithDescription("gdt is a tool for working with Godot scene and resource text files.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return gdtMain(cfg, cc, args)
		}).
		WithSubs(
			ViewCommand(cfg),
			CheckCommand(cfg),
			PruneCommand(cfg),
			TreeCommand(cfg),
			FindCommand(cfg),
			GetCommand(cfg),
			DumpCommand(cfg),
			PatchCommand(cfg),
			DiffCommand(cfg))
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("view").
		WithAliases("v").
		WithOpts(opts...).
		WithSynopsis("view [files]").
		WithDescription("view scene and resource files in color").
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
	cfg.View = cmd
	return cmd
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Check, "check").
		WithAliases("c").
		WithOpts(opts...).
		WithSynopsis("check [-q] [files or dirs]").
		WithDescription("check that files parse, re-encode to the same text, have no dangling references and form a scene tree").
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
}

func PruneCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PruneConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Prune, "prune").
		WithOpts(opts...).
		WithSynopsis("prune [-r] [-i] [files]").
		WithDescription("remove unused ext_resource and sub_resource sections").
		WithRun(func(cc *cli.Context, args []string) error {
			return prune(cfg, cc, args)
		})
}

func TreeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &TreeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Tree, "tree").
		WithAliases("t").
		WithOpts(opts...).
		WithSynopsis("tree [-t] [files]").
		WithDescription("print the node paths of scenes, including inherited nodes").
		WithRun(func(cc *cli.Context, args []string) error {
			return printTree(cfg, cc, args)
		})
}

func FindCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FindConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "find").
		WithAliases("f").
		WithSynopsis("find [opts] <query> [files]").
		WithDescription(findDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return find(cfg, cc, args)
		})
}

const findDescription = `find prints the sections matching a query.

A query is a boolean expression over a section, which it sees as

  kind    the section kind, "node", "ext_resource", ...
  attrs   header attributes
  props   properties
  has(k)  whether attribute or property k is set
  text(k) the text form of attribute or property k
  ref(k)  the id of the resource reference held by k

for example

  find 'kind == "node" && attrs.type == "Sprite"' Player.tscn`

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("get").
		WithAliases("g").
		WithSynopsis("get <nodepath>[:property] [files]").
		WithDescription("get a node or one of its properties, looking through inherited scenes").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
	cfg.Get = cmd
	return cmd
}

func DumpCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DumpConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Dump, "dump").
		WithOpts(opts...).
		WithSynopsis("dump [-y] [files]").
		WithDescription("dump the sections of files as json or yaml").
		WithRun(func(cc *cli.Context, args []string) error {
			return dump(cfg, cc, args)
		})
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("patch").
		WithAliases("p").
		WithSynopsis("patch [-where query] [-s] [-i] <json-patch> file").
		WithDescription("apply a json patch to the json form of sections, {\"attrs\": {...}, \"props\": {...}}").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
	cfg.Patch = cmd
	return cmd
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("diff").
		WithAliases("d").
		WithOpts(opts...).
		WithSynopsis("diff [-r] [-a] a b").
		WithDescription("diff scene or resource files section by section").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}
