package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"employee-http-service/internal/client/api"
	"employee-http-service/internal/client/forms"
	"employee-http-service/internal/client/listview"
)

func main() {
	addr := flag.String("addr", "http://localhost:5000", "服务端地址")
	flag.Parse()

	client := api.NewClient(*addr)
	view := listview.New()
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("员工管理客户端，输入 help 查看命令")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printHelp()
		case "register":
			handleAuth(client, scanner, true)
		case "login":
			handleAuth(client, scanner, false)
		case "list":
			handleList(client, view)
		case "show":
			printPage(view)
		case "search":
			view.Search(strings.Join(args, " "))
			printPage(view)
		case "sort":
			if len(args) != 1 {
				fmt.Println("用法: sort id|name|email|date")
				continue
			}
			view.SortBy(args[0])
			printPage(view)
		case "page":
			if len(args) != 1 {
				fmt.Println("用法: page <页码>")
				continue
			}
			n, err := strconv.Atoi(args[0])
			if err != nil {
				fmt.Println("页码必须是数字")
				continue
			}
			view.SetPage(n - 1)
			printPage(view)
		case "size":
			if len(args) != 1 {
				fmt.Println("用法: size 10|25|50")
				continue
			}
			n, err := strconv.Atoi(args[0])
			if err != nil {
				fmt.Println("行数必须是数字")
				continue
			}
			view.SetPageSize(n)
			printPage(view)
		case "create":
			handleCreate(client, view, scanner)
		case "edit":
			handleEdit(view, args)
		case "set":
			handleSet(view, args)
		case "save":
			handleSave(client, view)
		case "cancel":
			view.CancelEdit()
			fmt.Println("已取消编辑")
		case "delete":
			handleDelete(client, view, scanner, args)
		case "exit", "quit":
			return
		default:
			fmt.Printf("未知命令: %s\n", cmd)
		}
	}
}

func printHelp() {
	fmt.Println(`命令:
  register / login        注册或登录
  list                    从服务端加载员工列表
  show                    显示当前页
  search <关键字>          按姓名过滤（留空清除过滤）
  sort id|name|email|date 排序，重复执行反转方向
  page <页码>              跳转到指定页
  size 10|25|50           修改每页行数
  create                  创建员工
  edit <ID>               开始编辑指定员工
  set <字段> <值>          修改编辑缓冲区字段
  save / cancel           提交或取消编辑
  delete <ID>             删除员工
  exit                    退出`)
}

// prompt 读取一行输入
func prompt(scanner *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

func handleAuth(client *api.Client, scanner *bufio.Scanner, register bool) {
	userName := prompt(scanner, "用户名: ")
	password := prompt(scanner, "密码: ")

	if errs := forms.ValidateCredentials(userName, password); !errs.Valid() {
		for field, msg := range errs {
			fmt.Printf("  %s: %s\n", field, msg)
		}
		return
	}

	var err error
	if register {
		err = client.Register(userName, password)
	} else {
		err = client.Login(userName, password)
	}
	if err != nil {
		fmt.Printf("失败: %v\n", err)
		return
	}
	fmt.Println("成功，已获取令牌")
}

func handleList(client *api.Client, view *listview.ListView) {
	employees, err := client.ListEmployees()
	if err != nil {
		fmt.Printf("加载失败: %v\n", err)
		return
	}
	view.Load(employees)
	fmt.Printf("已加载 %d 条记录\n", view.TotalCount())
	printPage(view)
}

func printPage(view *listview.ListView) {
	rows := view.Rows()
	if len(rows) == 0 {
		fmt.Println("（无记录）")
		return
	}

	fmt.Printf("%-5s %-20s %-28s %-12s %-10s %-8s %s\n",
		"ID", "姓名", "邮箱", "手机号", "职位", "性别", "课程")
	for _, e := range rows {
		fmt.Printf("%-5d %-20s %-28s %-12s %-10s %-8s %s\n",
			e.ID, e.Name, e.Email, e.Mobile, e.Designation, e.Gender, strings.Join(e.Course, ","))
	}

	totalPages := (view.TotalCount() + view.PageSize() - 1) / view.PageSize()
	fmt.Printf("第 %d/%d 页，共 %d 条\n", view.Page()+1, totalPages, view.TotalCount())
}

func handleCreate(client *api.Client, view *listview.ListView, scanner *bufio.Scanner) {
	form := api.EmployeeForm{
		Name:        prompt(scanner, "姓名: "),
		Email:       prompt(scanner, "邮箱: "),
		Mobile:      prompt(scanner, "手机号: "),
		Designation: prompt(scanner, "职位 (Developer/Manager/Designer): "),
		Gender:      prompt(scanner, "性别 (Male/Female/Other): "),
	}
	if courses := prompt(scanner, "课程 (逗号分隔): "); courses != "" {
		for _, c := range strings.Split(courses, ",") {
			if c = strings.TrimSpace(c); c != "" {
				form.Course = append(form.Course, c)
			}
		}
	}
	form.ImagePath = prompt(scanner, "图片路径 (可留空): ")

	if errs := forms.ValidateEmployeeForm(form, true); !errs.Valid() {
		for field, msg := range errs {
			fmt.Printf("  %s: %s\n", field, msg)
		}
		return
	}

	employee, err := client.CreateEmployee(form)
	if err != nil {
		fmt.Printf("创建失败: %v\n", err)
		return
	}
	fmt.Printf("已创建员工 #%d\n", employee.ID)
	handleList(client, view)
}

func handleEdit(view *listview.ListView, args []string) {
	if len(args) != 1 {
		fmt.Println("用法: edit <ID>")
		return
	}
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		fmt.Println("ID必须是数字")
		return
	}
	if err := view.StartEdit(uint(id)); err != nil {
		fmt.Printf("失败: %v\n", err)
		return
	}
	fmt.Printf("正在编辑员工 #%d，用 set <字段> <值> 修改，save 提交\n", id)
}

func handleSet(view *listview.ListView, args []string) {
	buffer := view.Editing()
	if buffer == nil {
		fmt.Println("先用 edit <ID> 开始编辑")
		return
	}
	if len(args) < 2 {
		fmt.Println("用法: set name|email|mobile|designation|gender|course <值>")
		return
	}

	field, value := args[0], strings.Join(args[1:], " ")
	switch field {
	case "name":
		buffer.Name = value
	case "email":
		buffer.Email = value
	case "mobile":
		buffer.Mobile = value
	case "designation":
		buffer.Designation = value
	case "gender":
		buffer.Gender = value
	case "course":
		buffer.Course = nil
		for _, c := range strings.Split(value, ",") {
			if c = strings.TrimSpace(c); c != "" {
				buffer.Course = append(buffer.Course, c)
			}
		}
	default:
		fmt.Printf("未知字段: %s\n", field)
	}
}

func handleSave(client *api.Client, view *listview.ListView) {
	buffer := view.Editing()
	if buffer == nil {
		fmt.Println("当前没有进行中的编辑")
		return
	}

	form := api.EmployeeForm{
		Name:        buffer.Name,
		Email:       buffer.Email,
		Mobile:      buffer.Mobile,
		Designation: buffer.Designation,
		Gender:      buffer.Gender,
		Course:      buffer.Course,
	}
	if errs := forms.ValidateEmployeeForm(form, false); !errs.Valid() {
		for field, msg := range errs {
			fmt.Printf("  %s: %s\n", field, msg)
		}
		return
	}

	employee, err := client.UpdateEmployee(buffer.ID, form)
	if err != nil {
		fmt.Printf("更新失败: %v\n", err)
		return
	}
	view.CommitEdit(*employee)

	// 保存成功后重新拉取完整列表，保留当前过滤和排序状态
	if employees, err := client.ListEmployees(); err == nil {
		view.Reload(employees)
	}
	fmt.Printf("已更新员工 #%d\n", employee.ID)
}

func handleDelete(client *api.Client, view *listview.ListView, scanner *bufio.Scanner, args []string) {
	if len(args) != 1 {
		fmt.Println("用法: delete <ID>")
		return
	}
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		fmt.Println("ID必须是数字")
		return
	}

	// 删除前确认
	if answer := prompt(scanner, fmt.Sprintf("确认删除员工 #%d? (y/N): ", id)); answer != "y" && answer != "Y" {
		fmt.Println("已取消")
		return
	}

	if err := client.DeleteEmployee(uint(id)); err != nil {
		if api.IsNotFound(err) {
			fmt.Println("员工不存在")
		} else {
			fmt.Printf("删除失败: %v\n", err)
		}
		return
	}
	view.Remove(uint(id))
	fmt.Println("已删除")
}
