package coremain

import (
	"github.com/pmkol/tasklist/mlog"
	"github.com/pmkol/tasklist/pkg/task"
)

type Config struct {
	Log     mlog.LogConfig `yaml:"log"`
	Include []string       `yaml:"include"`
	Queues  []QueueConfig  `yaml:"queues"`

	// Parallel limits how many queues are drained at the same time.
	// Zero means no limit.
	Parallel int `yaml:"parallel"`
}

// QueueConfig represents a task queue.
type QueueConfig struct {
	// Name, optional. Used in logs and output.
	Name string `yaml:"name"`

	// Tasks are pushed to the back of the queue in order.
	Tasks []task.Config `yaml:"tasks"`
}

func binary(kind string, a, b float64) task.Config {
	return task.Config{Type: kind, Args: map[string]interface{}{"a": a, "b": b}}
}

func wrap(c task.Config) task.Config {
	return task.Config{Type: task.KindAddTask, Args: map[string]interface{}{
		"task": map[string]interface{}{"type": c.Type, "args": c.Args},
	}}
}

// defaultConfig is used when no config file can be found.
func defaultConfig() *Config {
	return &Config{
		Queues: []QueueConfig{{
			Name: "demo",
			Tasks: []task.Config{
				{Type: task.KindCountObjects},
				binary("sub", 5, 2),
				binary("sub", 4, 8),
				binary("add", 813, 23),
				binary("add", 8, -2),
				binary("mul", 12, 24),
				binary("mul", 1, 0),
				wrap(task.Config{Type: task.KindCountResultTasks}),
				binary("div", 1, 3),
				binary("div", 0, 8),
				{Type: task.KindCountResultTasks},
				{Type: task.KindCountTasks},
				wrap(task.Config{Type: task.KindCountTasks}),
				wrap(task.Config{Type: task.KindCountObjects}),
			},
		}},
	}
}
