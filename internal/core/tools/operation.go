package tools

// Tool names as advertised in the catalog.
const (
	NameListContainers  = "list_containers"
	NameStartContainer  = "start_container"
	NameStopContainer   = "stop_container"
	NameListSharedFiles = "list_shared_files"
)

// Operation is the closed set of actions a tool call can resolve to.
type Operation interface {
	// Function is the name the model used to request the operation.
	Function() string
	isOperation()
}

type ListContainers struct{}

type StartContainer struct {
	ContainerName string
}

type StopContainer struct {
	ContainerName string
}

type ListSharedFiles struct{}

// UnknownOperation is a call to a name missing from the catalog.
type UnknownOperation struct {
	Name string
}

func (ListContainers) Function() string     { return NameListContainers }
func (StartContainer) Function() string     { return NameStartContainer }
func (StopContainer) Function() string      { return NameStopContainer }
func (ListSharedFiles) Function() string    { return NameListSharedFiles }
func (o UnknownOperation) Function() string { return o.Name }

func (ListContainers) isOperation()   {}
func (StartContainer) isOperation()   {}
func (StopContainer) isOperation()    {}
func (ListSharedFiles) isOperation()  {}
func (UnknownOperation) isOperation() {}
