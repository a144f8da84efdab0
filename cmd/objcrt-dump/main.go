// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"

	"github.com/gnuobjc/objcrt"
)

var (
	wg   sync.WaitGroup
	jobs = make(chan string)
)

func main() {
	root := &cobra.Command{
		Use:   "objcrt-dump",
		Short: "Load and inspect GNU Objective-C module images",
	}
	root.AddCommand(newLoadCmd(), newDispatchCmd(), newVersionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the tool version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("objcrt-dump 0.1.0")
		},
	}
}

func newLoadCmd() *cobra.Command {
	var dir bool
	cmd := &cobra.Command{
		Use:   "load <path...>",
		Short: "Load one or more .objcmod images and report the resulting class graph",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := objcrt.NewRuntime(nil)
			if dir {
				return loadDirsWorker(rt, args)
			}
			for _, path := range args {
				if err := loadOne(rt, path); err != nil {
					fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
				}
			}
			reportClasses(rt)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dir, "dir", false, "treat each argument as a directory of .objcmod files")
	return cmd
}

func newDispatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dispatch <module> <class> <selector>",
		Short: "Load a module and resolve a single message send",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := objcrt.NewRuntime(nil)
			if err := loadOne(rt, args[0]); err != nil {
				return err
			}
			class := rt.GetClass(args[1])
			if class == nil {
				return fmt.Errorf("class %q not found", args[1])
			}
			sel, err := rt.InternSelector(args[2], "")
			if err != nil {
				return err
			}
			obj := objcrt.ClassCreateInstance(class, 0)
			code := rt.MsgLookup(obj, sel)
			fmt.Printf("class=%s selector=%s resolved=%v\n",
				objcrt.ClassGetName(class), sel, !objcrt.IsNoop(code))
			return nil
		},
	}
	return cmd
}

// loadDirsWorker fans batches of module paths out over a small worker
// pool, in the same shape as the PE dumper's loopFilesWorker/wg/jobs
// pattern, adapted here to feed one shared Runtime instead of printing
// each file independently.
func loadDirsWorker(rt *objcrt.Runtime, dirs []string) error {
	const workers = 4
	errCh := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				if err := loadOne(rt, path); err != nil {
					errCh <- fmt.Errorf("%s: %w", path, err)
				}
			}
		}()
	}

	go func() {
		for _, dir := range dirs {
			entries, err := os.ReadDir(dir)
			if err != nil {
				errCh <- err
				continue
			}
			for _, entry := range entries {
				if !entry.IsDir() {
					jobs <- filepath.Join(dir, entry.Name())
				}
			}
		}
		close(jobs)
	}()

	wg.Wait()
	close(errCh)
	for err := range errCh {
		fmt.Fprintln(os.Stderr, err)
	}
	reportClasses(rt)
	return nil
}

func loadOne(rt *objcrt.Runtime, path string) error {
	mod, mf, err := objcrt.OpenModuleFile(path, nil, nil, rt.NamePool())
	if err != nil {
		return err
	}
	defer mf.Close()
	rt.ExecClass(mod)
	return nil
}

func reportClasses(rt *objcrt.Runtime) {
	orphans, cats, methods := rt.PendingCounts()
	fmt.Printf("classes=%d pending(orphans=%d categories=%d methods=%d)\n",
		rt.ClassCount(), orphans, cats, methods)
}
