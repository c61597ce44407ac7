package model

// MenuItem is one link in a navigation menu.
type MenuItem struct {
	Title    string     `yaml:"title" mapstructure:"title"`
	URL      string     `yaml:"url" mapstructure:"url"`
	Children []MenuItem `yaml:"children" mapstructure:"children"`
}

// Widget is one user-configured block inside a widget area.
type Widget struct {
	ID      string `yaml:"id"`
	Type    string `yaml:"type"`
	Title   string `yaml:"title"`
	Content string `yaml:"content"`
}
